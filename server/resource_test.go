package server

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	c := DefaultURLConverter{Prefix: "/cards/"}

	testCases := []struct {
		name     string
		path     string
		wantErr  bool
		wantID   string
		wantView View
		wantType ResourceType
	}{
		{"prefix", "/cards/", false, "", ViewDownload, ResourceCollection},
		{"prefix without slash", "/cards", false, "", ViewDownload, ResourceCollection},
		{"card", "/cards/jane", false, "jane", ViewDownload, ResourceCard},
		{"card trailing slash", "/cards/jane/", false, "jane", ViewDownload, ResourceCard},
		{"qr view", "/cards/jane/qr", false, "jane", ViewQR, ResourceCard},
		{"xcard view", "/cards/jane.doe/xcard", false, "jane.doe", ViewXCard, ResourceCard},
		{"id sharing prefix text", "/cardsfoo", false, "cardsfoo", ViewDownload, ResourceCard},
		{"unknown view", "/cards/jane/pdf", true, "", ViewDownload, ResourceUnknown},
		{"invalid id", "/cards/.hidden", true, "", ViewDownload, ResourceUnknown},
		{"too many segments", "/cards/jane/qr/extra", true, "", ViewDownload, ResourceUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resource, err := c.ParsePath(tc.path)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, resource.ResourceType)
			assert.Equal(t, tc.wantID, resource.ID)
			assert.Equal(t, tc.wantView, resource.View)
			assert.Equal(t, tc.path, resource.URI)
		})
	}
}

func TestEncodePath(t *testing.T) {
	c := DefaultURLConverter{Prefix: "/cards/"}

	testCases := []struct {
		name     string
		resource Resource
		want     string
		wantErr  bool
	}{
		{"collection", Resource{ResourceType: ResourceCollection}, "/cards/", false},
		{"card", Resource{ID: "jane", ResourceType: ResourceCard}, "/cards/jane", false},
		{"qr", Resource{ID: "jane", ResourceType: ResourceCard, View: ViewQR}, "/cards/jane/qr", false},
		{"xcard", Resource{ID: "jane", ResourceType: ResourceCard, View: ViewXCard}, "/cards/jane/xcard", false},
		{"invalid id", Resource{ID: "a/b", ResourceType: ResourceCard}, "", true},
		{"unknown", Resource{}, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.EncodePath(tc.resource)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			// encoded paths parse back to the same resource
			parsed, err := c.ParsePath(got)
			require.NoError(t, err)
			assert.Equal(t, tc.resource.ID, parsed.ID)
			assert.Equal(t, tc.resource.View, parsed.View)
		})
	}
}

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("jane"))
	assert.True(t, ValidID("Jane_Doe-2.work"))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("-jane"))
	assert.False(t, ValidID("jane doe"))
	assert.False(t, ValidID(strings.Repeat("a", 129)))
}

func TestResourceTypeString(t *testing.T) {
	assert.Equal(t, "Collection", ResourceCollection.String())
	assert.Equal(t, "Card", ResourceCard.String())
	assert.Equal(t, "Unknown", ResourceUnknown.String())
}
