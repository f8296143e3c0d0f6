package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"

	"SkiBuddy/internal/onboarding"
	pkgerrors "SkiBuddy/pkg/errors"
)

const (
	photoField     = "photo"
	cancelledField = "cancelled"
	sniffLen       = 512
)

// multipartPhotoSource 从 multipart 请求中读取选中的照片，只有真正需要时才读取请求体
type multipartPhotoSource struct {
	c        *app.RequestContext
	maxBytes int64
}

func (s *multipartPhotoSource) Read(_ context.Context, cfg onboarding.PickConfig) ([]byte, bool, error) {
	if !bytes.HasPrefix(s.c.ContentType(), []byte("multipart/form-data")) {
		return nil, true, nil
	}

	form, err := s.c.MultipartForm()
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", pkgerrors.InvalidRequest, err)
	}
	if vals := form.Value[cancelledField]; len(vals) > 0 && vals[0] == "true" {
		return nil, true, nil
	}

	files := form.File[photoField]
	if len(files) == 0 {
		return nil, true, nil
	}
	fh := files[0]
	if s.maxBytes > 0 && fh.Size > s.maxBytes {
		return nil, false, pkgerrors.OnboardingPhotoTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, false, fmt.Errorf("open uploaded photo: %w", err)
	}
	defer f.Close()

	limit := s.maxBytes
	if limit <= 0 {
		limit = fh.Size
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, false, fmt.Errorf("read uploaded photo: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, false, pkgerrors.OnboardingPhotoTooLarge
	}

	if !acceptsMedia(cfg.MediaTypes, data) {
		return nil, false, pkgerrors.OnboardingPhotoInvalid
	}
	return data, false, nil
}

// acceptsMedia 按内容嗅探文件类型
func acceptsMedia(mediaTypes string, data []byte) bool {
	if len(data) == 0 {
		return false
	}
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	detected := http.DetectContentType(head)

	switch mediaTypes {
	case "images":
		return strings.HasPrefix(detected, "image/")
	default:
		return true
	}
}
