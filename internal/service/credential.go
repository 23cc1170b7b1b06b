package service

import "golang.org/x/crypto/bcrypt"

// passwordCost bcrypt 代价，测试中调低
var passwordCost = bcrypt.DefaultCost

// maxPasswordBytes bcrypt 只接受不超过 72 字节的输入
const maxPasswordBytes = 72

// hashPassword 生成密码哈希，超长返回 ErrPasswordTooLong
func hashPassword(plain string) (string, error) {
	if len(plain) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword 校验明文与哈希是否匹配
func verifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
