package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docrepo/internal/model"
	"docrepo/internal/storage"
)

// These tests run the service against a real directory tree.

func newLocalService(t *testing.T, opts ...Option) (DocumentService, string) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewLocal(root)
	require.NoError(t, err)
	return NewDocumentService(store, quietLogger(), opts...), root
}

func TestLocal_UploadThenListEveryFolder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLocalService(t)
	require.NoError(t, svc.Bootstrap(ctx))

	for _, f := range model.Folders() {
		payload := bytes.Repeat([]byte("d"), len(f.Key()))
		doc, err := svc.Upload(ctx, string(f.Category), string(f.Type), bytes.NewReader(payload), "memo.txt", "text/plain", int64(len(payload)))
		require.NoError(t, err, f.Key())

		files, err := svc.List(ctx, string(f.Category), string(f.Type))
		require.NoError(t, err)
		require.Len(t, files, 1, f.Key())
		assert.Equal(t, doc.Name, files[0].Name)
		assert.Equal(t, int64(len(payload)), files[0].Size)
	}
}

func TestLocal_DownloadIsByteIdentical(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLocalService(t)

	original := []byte("%PDF-1.4\n\x00\x01\x02 binary body\n%%EOF")
	_, err := svc.Upload(ctx, "logistics", "incoming", bytes.NewReader(original), "report.pdf", "application/pdf", int64(len(original)))
	require.NoError(t, err)

	files, err := svc.List(ctx, "logistics", "incoming")
	require.NoError(t, err)
	require.Len(t, files, 1)

	rc, info, err := svc.Download(ctx, "logistics", "incoming", files[0].Name)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, original, got)
	assert.Equal(t, int64(len(original)), info.Size)
}

func TestLocal_DownloadTraversalRejected(t *testing.T) {
	ctx := context.Background()
	svc, root := newLocalService(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("classified"), 0o600))

	for _, name := range []string{"../../secret.txt", "../secret.txt", "..", "sub/../../secret.txt"} {
		rc, _, err := svc.Download(ctx, "logistics", "incoming", name)
		assert.ErrorIs(t, err, ErrInvalidFilename, name)
		assert.Nil(t, rc)
	}
}

func TestLocal_ListEmptyFolder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLocalService(t)
	require.NoError(t, svc.Bootstrap(ctx))

	files, err := svc.List(ctx, "civil-military", "outgoing")
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestLocal_ListBeforeBootstrap(t *testing.T) {
	svc, _ := newLocalService(t)

	files, err := svc.List(context.Background(), "personnel", "incoming")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestLocal_DownloadNeverUploaded(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLocalService(t)
	require.NoError(t, svc.Bootstrap(ctx))

	_, _, err := svc.Download(ctx, "personnel", "outgoing", "1700000000000-ghost.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocal_SameNameDistinctTimestamps(t *testing.T) {
	ctx := context.Background()
	ticks := []time.Time{fixedNow, fixedNow.Add(time.Millisecond)}
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := ticks[0]
		ticks = ticks[1:]
		return now
	}
	svc, _ := newLocalService(t, WithClock(clock))

	a, err := svc.Upload(ctx, "training-ops", "incoming", bytes.NewReader([]byte("one")), "x.txt", "text/plain", 3)
	require.NoError(t, err)
	b, err := svc.Upload(ctx, "training-ops", "incoming", bytes.NewReader([]byte("two!")), "x.txt", "text/plain", 4)
	require.NoError(t, err)
	assert.NotEqual(t, a.Name, b.Name)

	files, err := svc.List(ctx, "training-ops", "incoming")
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestLocal_SameMillisecondLastWriterWins(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLocalService(t, WithClock(fixedClock))

	a, err := svc.Upload(ctx, "training-ops", "outgoing", bytes.NewReader([]byte("one")), "x.txt", "text/plain", 3)
	require.NoError(t, err)
	b, err := svc.Upload(ctx, "training-ops", "outgoing", bytes.NewReader([]byte("second")), "x.txt", "text/plain", 6)
	require.NoError(t, err)
	assert.Equal(t, a.Name, b.Name)

	files, err := svc.List(ctx, "training-ops", "outgoing")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, int64(6), files[0].Size)
}

func TestLocal_ConcurrentUploads(t *testing.T) {
	ctx := context.Background()
	var mu sync.Mutex
	tick := fixedNow
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick = tick.Add(time.Millisecond)
		return tick
	}
	svc, _ := newLocalService(t, WithClock(clock))

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Upload(ctx, "command-group", "incoming", bytes.NewReader([]byte("payload")), "x.txt", "text/plain", 7)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	files, err := svc.List(ctx, "command-group", "incoming")
	require.NoError(t, err)
	assert.Len(t, files, n)
}

func TestLocal_UploadRecreatesWipedFolder(t *testing.T) {
	ctx := context.Background()
	svc, root := newLocalService(t)
	require.NoError(t, svc.Bootstrap(ctx))
	require.NoError(t, os.RemoveAll(root))

	_, err := svc.Upload(ctx, "intelligence", "incoming", bytes.NewReader([]byte("x")), "brief.txt", "text/plain", 1)
	require.NoError(t, err)
}

func TestLocal_LegacySectionIDSharesCanonicalFolder(t *testing.T) {
	ctx := context.Background()
	svc, root := newLocalService(t)

	doc, err := svc.Upload(ctx, "s4_logistics", "incoming", bytes.NewReader([]byte("fuel")), "manifest.txt", "text/plain", 4)
	require.NoError(t, err)
	assert.Equal(t, model.Logistics, doc.Section)
	assert.FileExists(t, filepath.Join(root, "logistics", "incoming", doc.Name))
	assert.NoDirExists(t, filepath.Join(root, "s4_logistics"))

	files, err := svc.List(ctx, "logistics", "incoming")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, doc.Name, files[0].Name)

	rc, _, err := svc.Download(ctx, "s4_logistics", "incoming", doc.Name)
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "fuel", string(b))
}
