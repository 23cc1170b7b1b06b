package imageutil

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("编码 PNG 失败: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil); err != nil {
		t.Fatalf("编码 JPEG 失败: %v", err)
	}
	return buf.Bytes()
}

func TestValidateSignature_Valid(t *testing.T) {
	sig, err := ValidateSignature(pngBytes(t, 200, 80), "assinatura.PNG")
	if err != nil {
		t.Fatalf("期望成功，实际错误: %v", err)
	}
	if sig.Ext != "png" || sig.ContentType != "image/png" {
		t.Errorf("Ext=%q ContentType=%q", sig.Ext, sig.ContentType)
	}
	if sig.Resized {
		t.Error("小图不应缩放")
	}
}

func TestValidateSignature_BadExtension(t *testing.T) {
	_, err := ValidateSignature(pngBytes(t, 10, 10), "assinatura.gif")
	if !errors.Is(err, ErrUnsupportedExtension) {
		t.Errorf("期望 ErrUnsupportedExtension，实际=%v", err)
	}
}

func TestValidateSignature_NotAnImage(t *testing.T) {
	_, err := ValidateSignature([]byte("isto não é uma imagem"), "a.png")
	if !errors.Is(err, ErrNotAnImage) {
		t.Errorf("期望 ErrNotAnImage，实际=%v", err)
	}
}

func TestValidateSignature_TooLarge(t *testing.T) {
	data := make([]byte, MaxSignatureBytes+1)
	_, err := ValidateSignature(data, "a.jpg")
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("期望 ErrImageTooLarge，实际=%v", err)
	}
}

func TestValidateSignature_Resize(t *testing.T) {
	sig, err := ValidateSignature(pngBytes(t, 2400, 300), "a.png")
	if err != nil {
		t.Fatalf("期望成功，实际错误: %v", err)
	}
	if !sig.Resized {
		t.Fatal("期望缩放")
	}
	img, err := imaging.Decode(bytes.NewReader(sig.Data))
	if err != nil {
		t.Fatalf("解码缩放结果失败: %v", err)
	}
	if img.Bounds().Dx() != MaxSignatureEdge {
		t.Errorf("宽度=%d，期望 %d", img.Bounds().Dx(), MaxSignatureEdge)
	}
}

func TestNormalizeExt(t *testing.T) {
	if NormalizeExt("foto.JPEG") != "jpeg" {
		t.Errorf("NormalizeExt=%q", NormalizeExt("foto.JPEG"))
	}
	if NormalizeExt("png") != "png" {
		t.Errorf("无点号时应返回自身")
	}
}

func TestValidateSignature_ExtFromContent(t *testing.T) {
	sig, err := ValidateSignature(jpegBytes(t, 40, 20), "assinatura.png")
	if err != nil {
		t.Fatalf("期望成功，实际错误: %v", err)
	}
	if sig.Ext != "jpg" || sig.ContentType != "image/jpeg" {
		t.Errorf("JPEG 内容应存为 jpg，实际 Ext=%q ContentType=%q", sig.Ext, sig.ContentType)
	}

	sig, err = ValidateSignature(pngBytes(t, 40, 20), "assinatura.jpeg")
	if err != nil {
		t.Fatalf("期望成功，实际错误: %v", err)
	}
	if sig.Ext != "png" || sig.ContentType != "image/png" {
		t.Errorf("PNG 内容应存为 png，实际 Ext=%q ContentType=%q", sig.Ext, sig.ContentType)
	}
}

// 缩放后保持原内容格式
func TestValidateSignature_ResizeKeepsFormat(t *testing.T) {
	sig, err := ValidateSignature(pngBytes(t, 2400, 300), "a.jpg")
	if err != nil {
		t.Fatalf("期望成功，实际错误: %v", err)
	}
	if !sig.Resized || sig.Ext != "png" || sig.ContentType != "image/png" {
		t.Errorf("Resized=%v Ext=%q ContentType=%q", sig.Resized, sig.Ext, sig.ContentType)
	}
	if _, err := png.Decode(bytes.NewReader(sig.Data)); err != nil {
		t.Errorf("缩放结果应为 PNG: %v", err)
	}
}

func TestValidateSignature_DimensionsRejectedBeforeDecode(t *testing.T) {
	_, err := ValidateSignature(pngBytes(t, MaxDecodeEdge+1, 1), "a.png")
	if !errors.Is(err, ErrImageDimensions) {
		t.Errorf("期望 ErrImageDimensions，实际=%v", err)
	}
}
