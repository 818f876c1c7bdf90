package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMetadataRoundTripsPptx(t *testing.T) {
	title := "Quarterly Review"
	original := Metadata{
		Format: FormatMetadata{
			Type: FormatPPTX,
			Pptx: &PptxMetadata{
				Title:      &title,
				SlideCount: 3,
				ImageCount: 2,
				TableCount: 1,
			},
		},
	}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Metadata
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.NotNil(t, decoded.Format.Pptx, "the format subtree must survive a JSON round-trip")
	assert.Equal(t, original.Format.Type, decoded.Format.Type)
	assert.Equal(t, *original.Format.Pptx, *decoded.Format.Pptx)
}

func TestFormatMetadataRoundTripsZeroValue(t *testing.T) {
	raw, err := json.Marshal(Metadata{})
	require.NoError(t, err)

	var decoded Metadata
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, FormatMetadata{}, decoded.Format)
}
