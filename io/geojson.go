package io

import (
	"cellgrid/grid"
	"cellgrid/tile"
	"encoding/json"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReadGeometryFile reads the input geometry from a GeoJSON file or, for .osm and .pbf files, from the ways of an OSM
// file.
func ReadGeometryFile(filename string) (orb.Geometry, error) {
	extension := strings.ToLower(filepath.Ext(filename))
	if extension == ".osm" || extension == ".pbf" {
		lineStrings, err := ReadOsmFile(filename)
		if err != nil {
			return nil, err
		}
		return lineStrings, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to open GeoJSON file %s", filename)
	}
	defer file.Close()

	geometry, err := ReadGeometry(file)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to read GeoJSON file %s", filename)
	}
	return geometry, nil
}

// ReadGeometry reads a GeoJSON feature collection, a single feature or a bare geometry. Multiple geometries are
// combined into one collection.
func ReadGeometry(reader io.Reader) (orb.Geometry, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to read GeoJSON data")
	}

	var typeHeader struct {
		Type string `json:"type"`
	}
	err = json.Unmarshal(data, &typeHeader)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to parse GeoJSON data")
	}

	var geometries []orb.Geometry
	switch typeHeader.Type {
	case "FeatureCollection":
		featureCollection, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, errors.Wrap(err, "Unable to parse GeoJSON feature collection")
		}
		for _, feature := range featureCollection.Features {
			if feature.Geometry != nil {
				geometries = append(geometries, feature.Geometry)
			}
		}
	case "Feature":
		feature, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, errors.Wrap(err, "Unable to parse GeoJSON feature")
		}
		if feature.Geometry != nil {
			geometries = append(geometries, feature.Geometry)
		}
	default:
		geometry, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, errors.Wrapf(err, "Unable to parse GeoJSON geometry of type '%s'", typeHeader.Type)
		}
		if geometry.Geometry() != nil {
			geometries = append(geometries, geometry.Geometry())
		}
	}

	sigolo.Debugf("Read %d geometries from GeoJSON data", len(geometries))

	if len(geometries) == 0 {
		return nil, errors.New("GeoJSON data contains no geometry")
	} else if len(geometries) == 1 {
		return geometries[0], nil
	}
	return orb.Collection(geometries), nil
}

// WriteCollectionAsGeoJson writes every cell as polygon feature. If the collection has centroids, a point feature per
// centroid follows, labeled with labelDigits decimal digits and referencing its cell by index.
func WriteCollectionAsGeoJson(collection *grid.Collection, labelDigits int, writer io.Writer) error {
	sigolo.Info("Write cells to GeoJSON")
	writeStartTime := time.Now()

	featureCollection := geojson.NewFeatureCollection()
	for _, cell := range collection.Cells {
		feature := geojson.NewFeature(cell.ToPolygon())
		feature.Properties["cell_size"] = cell.Size
		feature.Properties["min_x"] = cell.LowerLeft.X()
		feature.Properties["min_y"] = cell.LowerLeft.Y()
		featureCollection.Append(feature)
	}

	for i, centroid := range collection.Centroids {
		feature := geojson.NewFeature(centroid)
		feature.Properties["label"] = tile.CenterLabel(centroid, labelDigits)
		feature.Properties["cell"] = i
		featureCollection.Append(feature)
	}

	geojsonBytes, err := featureCollection.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Unable to marshal cells to GeoJSON")
	}

	_, err = writer.Write(geojsonBytes)
	if err != nil {
		return errors.Wrap(err, "Unable to write GeoJSON")
	}

	sigolo.Infof("Finished writing %d cells and %d centroids in %s", len(collection.Cells), len(collection.Centroids), time.Since(writeStartTime))

	return nil
}

// WriteQuadBlocksAsJson writes the blocks as JSON object mapping the block ID to the list of quad IDs.
func WriteQuadBlocksAsJson(blocks tile.QuadBlocks, writer io.Writer) error {
	jsonBytes, err := json.Marshal(blocks)
	if err != nil {
		return errors.Wrap(err, "Unable to marshal quad blocks")
	}

	_, err = writer.Write(jsonBytes)
	if err != nil {
		return errors.Wrap(err, "Unable to write quad blocks")
	}
	return nil
}
