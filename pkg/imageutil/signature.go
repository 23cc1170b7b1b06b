// Package imageutil 校验并规范化上传的签名图片
package imageutil

import (
	"bytes"
	"errors"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

const (
	// MaxSignatureBytes 签名文件最大字节数（2MB）
	MaxSignatureBytes = 2 << 20
	// MaxSignatureEdge 超过该边长的签名会被等比缩放
	MaxSignatureEdge = 1200
	// MaxDecodeEdge 声明边长超过该值的图片在解码前拒绝
	MaxDecodeEdge = 8000
)

var (
	ErrUnsupportedExtension = errors.New("extensão de imagem não permitida")
	ErrImageTooLarge        = errors.New("imagem excede 2MB")
	ErrNotAnImage           = errors.New("arquivo não é uma imagem válida")
	ErrImageDimensions      = errors.New("dimensões da imagem excedem o limite")
)

type imageFormat struct {
	ext    string
	format imaging.Format
}

// 存储扩展名由检测到的内容类型决定，与上传文件名无关
var allowedMIME = map[string]imageFormat{
	"image/png":  {ext: "png", format: imaging.PNG},
	"image/jpeg": {ext: "jpg", format: imaging.JPEG},
}

// NormalizeExt 取最后一个点之后的部分并转小写
func NormalizeExt(name string) string {
	ext := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		ext = name[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(ext))
}

// AllowedExtension 签名仅接受 png / jpg / jpeg
func AllowedExtension(ext string) bool {
	switch NormalizeExt(ext) {
	case "png", "jpg", "jpeg":
		return true
	}
	return false
}

// Signature 校验后的签名图片
type Signature struct {
	Data        []byte
	Ext         string
	ContentType string
	Resized     bool
}

// ValidateSignature 校验扩展名、大小、真实内容与尺寸，过大的图片按原格式等比缩放后重新编码
func ValidateSignature(data []byte, filename string) (*Signature, error) {
	ext := NormalizeExt(filename)
	if !AllowedExtension(ext) {
		return nil, ErrUnsupportedExtension
	}
	if len(data) == 0 {
		return nil, ErrNotAnImage
	}
	if len(data) > MaxSignatureBytes {
		return nil, ErrImageTooLarge
	}

	mt := mimetype.Detect(data)
	kind, ok := allowedMIME[mt.String()]
	if !ok {
		return nil, ErrNotAnImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotAnImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxDecodeEdge || cfg.Height > MaxDecodeEdge {
		return nil, ErrImageDimensions
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotAnImage
	}

	sig := &Signature{Data: data, Ext: kind.ext, ContentType: mt.String()}

	b := img.Bounds()
	if b.Dx() <= MaxSignatureEdge && b.Dy() <= MaxSignatureEdge {
		return sig, nil
	}

	resized := imaging.Fit(img, MaxSignatureEdge, MaxSignatureEdge, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, kind.format); err != nil {
		return nil, err
	}

	sig.Data = buf.Bytes()
	sig.Resized = true
	return sig, nil
}
