package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"strings"
	"testing"

	"github.com/dmitrijs2005/flowspace/internal/common"
	"github.com/dmitrijs2005/flowspace/internal/logging"
	"github.com/dmitrijs2005/flowspace/internal/server/models"
)

type fakeObjectStore struct {
	putErr    error
	deleteErr error

	objects map[string][]byte
	deleted []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (f *fakeObjectStore) Put(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	f.objects[key] = content
	return "http://store.local/profilepicture/" + key, nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode error: %v", err)
	}
	return buf.Bytes()
}

func newTestProfileService(u *fakeUsersRepo, store *fakeObjectStore) *ProfileService {
	rm := &fakeRepoManager{u: u, r: newFakeRevokedRepo()}
	return NewProfileService(nil, rm, store, discardLogger())
}

func TestUploadProfilePicture_Success(t *testing.T) {
	u := newFakeUsersRepo()
	user := &models.User{ID: "u-1", Username: "alice", Email: "a@example.com"}
	u.add(user)
	store := newFakeObjectStore()
	s := newTestProfileService(u, store)

	url, err := s.UploadProfilePicture(context.Background(), user, pngBytes(t, 10, 10), "avatar.png")
	if err != nil {
		t.Fatalf("UploadProfilePicture error: %v", err)
	}
	if !strings.HasPrefix(url, "http://store.local/profilepicture/u-1_") {
		t.Fatalf("unexpected url: %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("key should keep the original extension: %q", url)
	}
	if got := u.updated["u-1"]; got != url {
		t.Fatalf("url not persisted: %q", got)
	}
	if len(store.objects) != 1 {
		t.Fatalf("expected exactly one stored object, got %d", len(store.objects))
	}
}

func TestUploadProfilePicture_ReplacesPrevious(t *testing.T) {
	u := newFakeUsersRepo()
	user := &models.User{
		ID: "u-1", Email: "a@example.com",
		ProfilePictureURL: "http://store.local/profilepicture/u-1_old.png",
	}
	u.add(user)
	store := newFakeObjectStore()
	s := newTestProfileService(u, store)

	if _, err := s.UploadProfilePicture(context.Background(), user, pngBytes(t, 10, 10), "new.jpg"); err != nil {
		t.Fatalf("UploadProfilePicture error: %v", err)
	}

	if len(store.deleted) != 1 || store.deleted[0] != "u-1_old.png" {
		t.Fatalf("previous object not deleted: %v", store.deleted)
	}
}

func TestUploadProfilePicture_InvalidImage(t *testing.T) {
	u := newFakeUsersRepo()
	user := &models.User{ID: "u-1", Email: "a@example.com"}
	u.add(user)
	s := newTestProfileService(u, newFakeObjectStore())

	_, err := s.UploadProfilePicture(context.Background(), user, []byte("junk"), "avatar.png")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestUploadProfilePicture_BadExtension(t *testing.T) {
	u := newFakeUsersRepo()
	user := &models.User{ID: "u-1", Email: "a@example.com"}
	u.add(user)
	s := newTestProfileService(u, newFakeObjectStore())

	_, err := s.UploadProfilePicture(context.Background(), user, pngBytes(t, 4, 4), "avatar.tiff")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestUploadProfilePicture_PersistFailureRemovesUpload(t *testing.T) {
	u := newFakeUsersRepo()
	user := &models.User{ID: "u-1", Email: "a@example.com"}
	u.add(user)
	u.updateErr = errors.New("update failed")
	store := newFakeObjectStore()
	s := newTestProfileService(u, store)

	_, err := s.UploadProfilePicture(context.Background(), user, pngBytes(t, 10, 10), "avatar.png")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
	if len(store.objects) != 0 {
		t.Fatalf("orphaned object should have been removed, got %v", store.objects)
	}
}

func TestUploadProfilePicture_StorePutFailure(t *testing.T) {
	u := newFakeUsersRepo()
	user := &models.User{ID: "u-1", Email: "a@example.com"}
	u.add(user)
	store := newFakeObjectStore()
	store.putErr = errors.New("s3 down")
	s := newTestProfileService(u, store)

	_, err := s.UploadProfilePicture(context.Background(), user, pngBytes(t, 10, 10), "avatar.png")
	if !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}

func TestGetProfilePicture(t *testing.T) {
	u := newFakeUsersRepo()
	u.add(&models.User{ID: "u-1", Email: "a@example.com", ProfilePictureURL: "http://x/pic.jpg"})
	s := newTestProfileService(u, newFakeObjectStore())

	url, err := s.GetProfilePicture(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetProfilePicture error: %v", err)
	}
	if url != "http://x/pic.jpg" {
		t.Fatalf("unexpected url: %q", url)
	}

	if _, err := s.GetProfilePicture(context.Background(), "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDeleteProfilePicture_Success(t *testing.T) {
	u := newFakeUsersRepo()
	u.add(&models.User{ID: "u-1", Email: "a@example.com", ProfilePictureURL: "http://x/profilepicture/u-1_pic.jpg"})
	store := newFakeObjectStore()
	s := newTestProfileService(u, store)

	if err := s.DeleteProfilePicture(context.Background(), "u-1"); err != nil {
		t.Fatalf("DeleteProfilePicture error: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "u-1_pic.jpg" {
		t.Fatalf("object not deleted: %v", store.deleted)
	}
	if u.updated["u-1"] != "" {
		t.Fatalf("url not cleared: %q", u.updated["u-1"])
	}
}

func TestDeleteProfilePicture_NonePresent(t *testing.T) {
	u := newFakeUsersRepo()
	u.add(&models.User{ID: "u-1", Email: "a@example.com"})
	s := newTestProfileService(u, newFakeObjectStore())

	if err := s.DeleteProfilePicture(context.Background(), "u-1"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDeleteProfilePicture_StoreFailure(t *testing.T) {
	u := newFakeUsersRepo()
	u.add(&models.User{ID: "u-1", Email: "a@example.com", ProfilePictureURL: "http://x/p/u-1_pic.jpg"})
	store := newFakeObjectStore()
	store.deleteErr = errors.New("s3 down")
	s := newTestProfileService(u, store)

	if err := s.DeleteProfilePicture(context.Background(), "u-1"); !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("want common.ErrorInternal, got %v", err)
	}
}
