package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSilence(t *testing.T, path string, d time.Duration) {
	t.Helper()
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, wav.Encode(f, beep.Silence(format.SampleRate.N(d)), format))
}

func TestLength(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "silence.wav")
	writeSilence(t, path, 1500*time.Millisecond)

	length, err := Length(path)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, length.Seconds(), 0.001)

	_, err = Length(filepath.Join(dir, "missing.ogg"))
	assert.Error(t, err)

	_, err = Length(filepath.Join(dir, "song.flac"))
	assert.ErrorIs(t, err, ErrUnsupported)

	garbage := filepath.Join(dir, "garbage.mp3")
	require.NoError(t, os.WriteFile(garbage, []byte("not audio"), 0o644))
	_, err = Length(garbage)
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a/b.mp3"))
	assert.True(t, Supported("b.OGG"))
	assert.True(t, Supported("c.wav"))
	assert.False(t, Supported("d.flac"))
	assert.False(t, Supported("e"))
}

func TestNotesPerSecond(t *testing.T) {
	assert.Equal(t, 0.0, NotesPerSecond(100, 0))
	assert.Equal(t, 4.0, NotesPerSecond(400, 100*time.Second))
}
