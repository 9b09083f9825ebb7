package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrBackground 背景图无法解码
var ErrBackground = errors.New("背景图无法解码")

// DecodeBackground 解析 data URL（data:image/png;base64,...）或纯 base64 编码的图片
func DecodeBackground(ref string) (image.Image, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: 内容为空", ErrBackground)
	}
	if strings.HasPrefix(ref, "data:") {
		i := strings.Index(ref, ",")
		if i < 0 || !strings.Contains(ref[:i], ";base64") {
			return nil, fmt.Errorf("%w: 仅支持 base64 data URL", ErrBackground)
		}
		ref = ref[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(ref)
	if err != nil {
		if raw, err = base64.RawStdEncoding.DecodeString(ref); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackground, err)
		}
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackground, err)
	}
	return img, nil
}

// fitBackground 拉伸背景图铺满画布
func fitBackground(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}
