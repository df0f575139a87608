package minio

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// 归档图片的最大宽度，超出时等比缩小
const archiveMaxWidth = 1600

var httpClient = resty.New().SetTimeout(30 * time.Second)

// ArchiveImage 下载远端图片、压到上限宽度后以 JPEG 存入归档桶。
// 搜索源的图片 URL 会轮换失效，归档副本保证发布时还拿得到字节。
func ArchiveImage(ctx context.Context, imageURL string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	resp, err := httpClient.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("image download returned status %d", resp.StatusCode())
	}

	img, err := imaging.Decode(bytes.NewReader(resp.Body()))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > archiveMaxWidth {
		img = imaging.Resize(img, archiveMaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	objectName := "posts/" + uuid.NewString() + ".jpg"
	if _, err = UploadFile(ctx, objectName, &buf, int64(buf.Len()), "image/jpeg"); err != nil {
		return "", err
	}
	return objectName, nil
}
