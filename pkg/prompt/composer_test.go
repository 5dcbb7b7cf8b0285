package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_TechStartupModern(t *testing.T) {
	got, err := Compose("Tech startup", StyleModern)
	require.NoError(t, err)

	assert.Contains(t, got, "Tech startup")
	assert.Contains(t, got, StyleModern.Description())
	assert.Equal(t,
		`Professional logo design for "Tech startup", sleek, contemporary, professional logo design with clean lines, vector art style, centered composition, white background, high quality, crisp details, suitable for branding`,
		got)
}

func TestCompose_EveryStyle(t *testing.T) {
	for _, info := range Styles() {
		t.Run(string(info.Name), func(t *testing.T) {
			got, err := Compose("Coffee shop", info.Name)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(got, `Professional logo design for "Coffee shop", `))
			assert.Contains(t, got, info.Description)
			assert.True(t, strings.HasSuffix(got, "suitable for branding"))
		})
	}
}

func TestCompose_RejectsBlankDescription(t *testing.T) {
	for _, desc := range []string{"", "   ", "\t\n"} {
		_, err := Compose(desc, StyleModern)
		assert.ErrorIs(t, err, ErrEmptyDescription)
	}
	assert.Equal(t, "Please enter a description for your logo", ErrEmptyDescription.Error())
}

func TestCompose_UnknownStyle(t *testing.T) {
	_, err := Compose("Fitness brand", StylePreset("baroque"))
	assert.Error(t, err)
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    StylePreset
		wantErr bool
	}{
		{"", StyleModern, false},
		{"modern", StyleModern, false},
		{" Gradient ", StyleGradient, false},
		{"GEOMETRIC", StyleGeometric, false},
		{"baroque", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStyle(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStyles_Order(t *testing.T) {
	assert.Equal(t, []string{"modern", "minimalist", "abstract", "geometric", "gradient"}, StyleNames())
	assert.Len(t, Styles(), 5)
}
