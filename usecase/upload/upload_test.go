package upload

import (
	"context"
	"errors"
	"testing"
)

type fakeUploader struct {
	url string
	err error

	gotFilename string
	gotBytes    int
}

func (f *fakeUploader) Upload(_ context.Context, filename string, data []byte) (string, error) {
	f.gotFilename = filename
	f.gotBytes = len(data)
	return f.url, f.err
}

func TestUploadAttachment(t *testing.T) {
	uploader := &fakeUploader{url: "https://img.example/x.png"}
	uc := New(uploader, 1024, nil)

	url, err := uc.UploadAttachment(context.Background(), "x.png", []byte("data"))
	if err != nil {
		t.Fatalf("UploadAttachment: %v", err)
	}
	if url != "https://img.example/x.png" {
		t.Errorf("url = %q", url)
	}
	if uploader.gotFilename != "x.png" || uploader.gotBytes != 4 {
		t.Errorf("uploader received %q/%d bytes", uploader.gotFilename, uploader.gotBytes)
	}
}

func TestUploadAttachment_Validation(t *testing.T) {
	uc := New(&fakeUploader{url: "u"}, 8, nil)

	if _, err := uc.UploadAttachment(context.Background(), "x", nil); err == nil {
		t.Error("empty file must be rejected")
	}
	if _, err := uc.UploadAttachment(context.Background(), "x", []byte("123456789")); err == nil {
		t.Error("oversized file must be rejected")
	}
}

func TestUploadAttachment_HostFailureSurfaces(t *testing.T) {
	uc := New(&fakeUploader{err: errors.New("host down")}, 1024, nil)

	if _, err := uc.UploadAttachment(context.Background(), "x.png", []byte("data")); err == nil {
		t.Fatal("upload failure must surface to block the form")
	}
}
