package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *LocalStorageClient {
	t.Helper()
	client, err := NewLocalStorageClient(filepath.Join(t.TempDir(), "reports"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewLocalStorageClientCreatesBaseDir(t *testing.T) {
	client := newLocal(t)
	info, err := os.Stat(client.BaseDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalStoreAndGetFile(t *testing.T) {
	client := newLocal(t)
	ctx := context.Background()

	require.NoError(t, client.StoreFile(ctx, "2025/09/17/report/index.html", []byte("<html></html>")))

	data, err := client.GetFile(ctx, "/2025/09/17/report/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	exists, err := client.FileExists(ctx, "2025/09/17/report/index.html")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.FileExists(ctx, "2025/09/17/report")
	require.NoError(t, err)
	assert.False(t, exists, "directories are not files")

	_, err = client.GetFile(ctx, "2025/09/17/report/missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalRejectsTraversal(t *testing.T) {
	client := newLocal(t)
	ctx := context.Background()

	assert.ErrorIs(t, client.StoreFile(ctx, "../escape.txt", []byte("x")), ErrInvalidPath)
	_, err := client.GetFile(ctx, "a/../../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.ErrorIs(t, client.CreateDir(ctx, ".."), ErrInvalidPath)
}

func TestLocalStoreFileHonoursContext(t *testing.T) {
	client := newLocal(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, client.StoreFile(ctx, "a.txt", nil), context.Canceled)
}

func TestLocalListDir(t *testing.T) {
	client := newLocal(t)
	ctx := context.Background()

	for _, p := range []string{"a/one.txt", "a/two.txt", "a/b/three.txt", "c/four.txt"} {
		require.NoError(t, client.StoreFile(ctx, p, []byte(p)))
	}
	require.NoError(t, client.CreateDir(ctx, "empty"))

	flat, err := client.ListDir(ctx, "a", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/one.txt", "a/two.txt"}, flat)

	deep, err := client.ListDir(ctx, "a", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b/three.txt", "a/one.txt", "a/two.txt"}, deep)

	none, err := client.ListDir(ctx, "empty", true)
	require.NoError(t, err)
	assert.Empty(t, none)

	missing, err := client.ListDir(ctx, "nope", true)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestLocalListReports(t *testing.T) {
	client := newLocal(t)
	ctx := context.Background()

	base := time.Date(2025, 9, 17, 8, 0, 0, 0, time.UTC)
	for i, tech := range []string{"solar", "wind", "hydro"} {
		folder := GenerateReportFolderPath(tech, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, client.StoreFile(ctx, folder+"/index.html", []byte(tech)))
		require.NoError(t, client.StoreFile(ctx, folder+"/report.xlsx", []byte(tech)))
	}

	reports, err := client.ListReports(ctx, 0)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, "hydro", reports[0].Technology)
	assert.Equal(t, "solar", reports[2].Technology)

	latest, err := client.ListReports(ctx, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)

	data, err := client.GetFile(ctx, latest[0].IndexPath)
	require.NoError(t, err)
	assert.Equal(t, "hydro", string(data))
}
