package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_Calculate(t *testing.T) {
	tests := []struct {
		name      string
		algorithm Algorithm
		input     string
		want      string
	}{
		{name: "sha256", algorithm: SHA256, input: "password", want: "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8"},
		{name: "sha256 empty", algorithm: SHA256, input: "", want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{name: "md5", algorithm: MD5, input: "password", want: "5f4dcc3b5aa765d61d8327deb882cf99"},
		{name: "sha1", algorithm: SHA1, input: "password", want: "5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewPasswordHasher(tt.algorithm)
			require.NoError(t, err)

			got, err := h.Calculate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPasswordHasher_Deterministic(t *testing.T) {
	h, err := NewPasswordHasher(SHA512)
	require.NoError(t, err)

	first, err := h.Calculate("s3cret")
	require.NoError(t, err)
	second, err := h.Calculate("s3cret")
	require.NoError(t, err)
	other, err := h.Calculate("s3cret!")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 128)

	ok, err := h.Verify("s3cret", first)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", first)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewPasswordHasher_UnknownAlgorithm(t *testing.T) {
	_, err := NewPasswordHasher("crc32")
	assert.EqualError(t, err, "unsupported hash algorithm: crc32")
}
