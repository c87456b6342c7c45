package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Scale)
	assert.Equal(t, IndexMSNI, cfg.IndexType)
	assert.Equal(t, GeometryBar, cfg.Geometry)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "four band line", cfg: Config{Scale: 4, Geometry: GeometryLine}},
		{name: "five band bar", cfg: Config{Scale: 5, Geometry: GeometryBar}},
		{name: "unknown index type is allowed", cfg: Config{Scale: 4, IndexType: "foo", Geometry: GeometryBar}},
		{name: "scale zero", cfg: Config{Geometry: GeometryBar}, wantErr: true},
		{name: "scale three", cfg: Config{Scale: 3, Geometry: GeometryBar}, wantErr: true},
		{name: "geometry pie", cfg: Config{Scale: 4, Geometry: "pie"}, wantErr: true},
		{name: "empty geometry", cfg: Config{Scale: 4}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseConfig(t *testing.T) {
	t.Run("full configuration", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`
index_max: 4
index_type: lsg
geometry: line
title: Severity by district
group_column: district
group_order: [Homs, Aleppo]
group_labels: [Hims, Alep]
`))
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Scale)
		assert.Equal(t, IndexLSG, cfg.IndexType)
		assert.Equal(t, GeometryLine, cfg.Geometry)
		assert.Equal(t, "Severity by district", cfg.Title)
		assert.Equal(t, []string{"Homs", "Aleppo"}, cfg.GroupOrder)
		assert.Equal(t, []string{"Hims", "Alep"}, cfg.GroupLabels)
	})

	t.Run("defaults apply to omitted fields", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("geometry: line\n"))
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Scale)
		assert.Equal(t, IndexMSNI, cfg.IndexType)
		assert.Equal(t, GeometryLine, cfg.Geometry)
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		_, err := ParseConfig([]byte("index_max: 7\ngeometry: bar\n"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml fails decoding", func(t *testing.T) {
		_, err := ParseConfig([]byte("geometry: [unterminated"))
		assert.Error(t, err)
	})
}
