package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain name", input: "resume.pdf", expected: "resume.pdf"},
		{name: "spaces become underscores", input: "my resume.pdf", expected: "my_resume.pdf"},
		{name: "path components stripped", input: "../../etc/passwd", expected: "passwd"},
		{name: "windows path stripped", input: `C:\Users\me\resume.pdf`, expected: "resume.pdf"},
		{name: "unsafe characters dropped", input: "r\x00e;s$u*me.pdf", expected: "resume.pdf"},
		{name: "leading dots trimmed", input: "..hidden.txt", expected: "hidden.txt"},
		{name: "nothing safe left", input: "###", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "pdf", FileExtension("resume.pdf"))
	assert.Equal(t, "pdf", FileExtension("resume.PDF"))
	assert.Equal(t, "gz", FileExtension("archive.tar.gz"))
	assert.Equal(t, "", FileExtension("README"))
	assert.Equal(t, "", FileExtension("trailing."))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	assert.NoError(t, err)

	assert.True(t, VerifyPassword(hash, "s3cret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword(hash, ""))
}
