package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tern-fm/tern/internal/config"
)

func TestRemotesLoadParsesSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nets.cfm")
	fileOps := config.OSFileOps{}
	content := "" +
		"[backup]\n" +
		"Comment=nightly backup share\n" +
		"Mountpoint=/mnt/backup\n" +
		"MountCmd=sshfs user@host:/ /mnt/backup\n" +
		"UnmountCmd=fusermount -u /mnt/backup\n" +
		"AutoMount=true\n" +
		"AutoUnmount=false\n" +
		"\n" +
		"[scratch]\n" +
		"Mountpoint=/mnt/scratch\n"
	require.NoError(t, fileOps.WriteFile(path, []byte(content), 0o600))

	r := NewRemotes()
	require.NoError(t, r.Load(fileOps, path))
	require.Equal(t, 2, r.Len())

	backup, ok := r.ByName("backup")
	require.True(t, ok)
	assert.Equal(t, "nightly backup share", backup.Comment)
	assert.Equal(t, "/mnt/backup", backup.Mountpoint)
	assert.True(t, backup.AutoMount)
	assert.False(t, backup.AutoUnmount)

	scratch, ok := r.ByName("scratch")
	require.True(t, ok)
	assert.Equal(t, "/mnt/scratch", scratch.Mountpoint)
}

func TestRemotesAddReplacesByName(t *testing.T) {
	r := NewRemotes()
	r.Add(Remote{Name: "backup", Mountpoint: "/old"})
	r.Add(Remote{Name: "backup", Mountpoint: "/new"})

	require.Equal(t, 1, r.Len())
	got, ok := r.ByName("backup")
	require.True(t, ok)
	assert.Equal(t, "/new", got.Mountpoint)
}

func TestRemotesSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nets.cfm")
	fileOps := config.OSFileOps{}

	r := NewRemotes()
	r.Add(Remote{Name: "backup", Mountpoint: "/mnt/backup", MountCmd: "mount-it", AutoMount: true})
	require.NoError(t, r.Save(fileOps, path))

	loaded := NewRemotes()
	require.NoError(t, loaded.Load(fileOps, path))
	got, ok := loaded.ByName("backup")
	require.True(t, ok)
	assert.Equal(t, "/mnt/backup", got.Mountpoint)
	assert.Equal(t, "mount-it", got.MountCmd)
	assert.True(t, got.AutoMount)
}

func TestRemotesByNameMissReturnsFalse(t *testing.T) {
	r := NewRemotes()
	_, ok := r.ByName("nope")
	assert.False(t, ok)
}
