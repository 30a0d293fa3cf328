package io

import (
	"context"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"io"
	"os"
	"strings"
	"time"
)

// ReadOsmFile reads all ways of the given .osm or .pbf file as line strings.
func ReadOsmFile(filename string) (orb.MultiLineString, error) {
	if !strings.HasSuffix(filename, ".osm") && !strings.HasSuffix(filename, ".pbf") {
		return nil, errors.Errorf("Input file %s must be an .osm or .pbf file", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to open OSM input file %s", filename)
	}
	defer file.Close()

	lineStrings, err := ReadOsm(file, strings.HasSuffix(filename, ".pbf"))
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read OSM input file %s", filename)
	}
	return lineStrings, nil
}

// ReadOsm turns every way with at least two known nodes into a line string. Nodes must appear before the ways using
// them, which is the case for regular OSM files.
func ReadOsm(reader io.Reader, isPbf bool) (orb.MultiLineString, error) {
	var scanner osm.Scanner
	if isPbf {
		scanner = osmpbf.New(context.Background(), reader, 1)
	} else {
		scanner = osmxml.New(context.Background(), reader)
	}
	defer scanner.Close()

	sigolo.Debug("Start processing OSM data")
	readStartTime := time.Now()

	nodeToPositionMap := map[osm.NodeID]orb.Point{}
	var lineStrings orb.MultiLineString

	for scanner.Scan() {
		switch osmObj := scanner.Object().(type) {
		case *osm.Node:
			nodeToPositionMap[osmObj.ID] = orb.Point{osmObj.Lon, osmObj.Lat}
		case *osm.Way:
			var lineString orb.LineString
			for _, node := range osmObj.Nodes {
				position, ok := nodeToPositionMap[node.ID]
				if !ok {
					sigolo.Tracef("Node %d of way %d not found, I'll skip it", node.ID, osmObj.ID)
					continue
				}
				lineString = append(lineString, position)
			}

			if len(lineString) < 2 {
				sigolo.Debugf("Way %d has less than two known nodes, I'll ignore it", osmObj.ID)
				continue
			}
			lineStrings = append(lineStrings, lineString)
		}
	}

	err := scanner.Err()
	if err != nil {
		return nil, errors.Wrap(err, "Error scanning OSM data")
	}

	sigolo.Infof("Read %d ways with %d nodes in %s", len(lineStrings), len(nodeToPositionMap), time.Since(readStartTime))
	return lineStrings, nil
}
