package io

import (
	"cellgrid/util"
	"github.com/paulmach/orb"
	"strings"
	"testing"
)

const osmData = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
  <node id="1" lat="48.1" lon="-120.9"/>
  <node id="2" lat="48.2" lon="-120.6"/>
  <node id="3" lat="48.3" lon="-120.5"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="path"/>
  </way>
  <way id="11">
    <nd ref="3"/>
    <nd ref="99"/>
  </way>
</osm>`

func TestReadOsm(t *testing.T) {
	// Act
	lineStrings, err := ReadOsm(strings.NewReader(osmData), false)

	// Assert
	util.AssertNil(t, err)
	util.AssertEqual(t, orb.MultiLineString{
		{{-120.9, 48.1}, {-120.6, 48.2}, {-120.5, 48.3}},
	}, lineStrings)
}

func TestReadOsmFile_wrongExtension(t *testing.T) {
	// Act
	_, err := ReadOsmFile("trail.geojson")

	// Assert
	util.AssertError(t, "Input file trail.geojson must be an .osm or .pbf file", err)
}
