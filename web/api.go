package web

import (
	"bytes"
	"cellgrid/grid"
	ownIo "cellgrid/io"
	"cellgrid/tile"
	"encoding/json"
	"fmt"
	"github.com/gorilla/mux"
	"github.com/hauke96/sigolo/v2"
	"github.com/pkg/errors"
	"net/http"
	"runtime"
	"strconv"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func NewErrorResponse(message string, err error) ErrorResponse {
	response := ErrorResponse{Error: message}
	if err != nil {
		response.Details = err.Error()
	}
	return response
}

func StartServer(port string) {
	r := initRouter()
	sigolo.Infof("Start server without TLS support on port %s", port)
	err := http.ListenAndServe(":"+port, r)
	sigolo.FatalCheck(err)
}

func StartServerTls(port string, certFile string, keyFile string) {
	r := initRouter()
	sigolo.Infof("Start server with TLS support on port %s", port)
	err := http.ListenAndServeTLS(":"+port, certFile, keyFile, r)
	sigolo.FatalCheck(err)
}

func initRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/profiles", handleProfiles).Methods(http.MethodGet)
	r.HandleFunc("/cells", handleCells).Methods(http.MethodPost)
	r.HandleFunc("/quads", handleQuads).Methods(http.MethodPost)
	r.HandleFunc("/elevation", handleElevation).Methods(http.MethodPost)
	return r
}

func handleProfiles(writer http.ResponseWriter, request *http.Request) {
	writeJson(writer, grid.Profiles)
}

func handleCells(writer http.ResponseWriter, request *http.Request) {
	profile, err := profileFromRequest(request)
	if err != nil {
		sigolo.Errorf("Invalid grid parameters: %+v", err)
		writeError(writer, http.StatusBadRequest, fmt.Sprintf("Invalid grid parameters: %s", err.Error()), err)
		return
	}

	collection, ok := applyProfile(writer, request, profile)
	if !ok {
		return
	}

	// Write into a buffer first, so that a failure still results in a proper error response.
	buffer := &bytes.Buffer{}
	err = ownIo.WriteCollectionAsGeoJson(collection, profile.RoundDigits, buffer)
	if err != nil {
		sigolo.Errorf("Error writing cells: %+v", err)
		writeError(writer, http.StatusInternalServerError, "Error writing cells.", err)
		return
	}

	writer.Header().Set("Access-Control-Allow-Origin", "*")
	writer.Header().Set("Content-Type", "application/geo+json")
	_, err = writer.Write(buffer.Bytes())
	if err != nil {
		sigolo.Errorf("Error writing response: %+v", err)
	}
}

func handleQuads(writer http.ResponseWriter, request *http.Request) {
	collection, ok := applyProfile(writer, request, grid.CoarseAlignedGrid)
	if !ok {
		return
	}

	writeJson(writer, tile.NewQuadBlocks(collection.Cells))
}

func handleElevation(writer http.ResponseWriter, request *http.Request) {
	collection, ok := applyProfile(writer, request, grid.OneDegreeGrid)
	if !ok {
		return
	}

	archives := tile.ElevationArchives(collection.Cells)
	if archives == nil {
		archives = []string{}
	}
	writeJson(writer, archives)
}

// applyProfile reads the geometry from the request body and applies the profile on it. Errors are written to the
// response, in which case false is returned.
func applyProfile(writer http.ResponseWriter, request *http.Request, profile grid.Profile) (*grid.Collection, bool) {
	orbGeometry, err := ownIo.ReadGeometry(request.Body)
	if err != nil {
		sigolo.Errorf("Error reading geometry from request to '%s': %+v", request.URL.Path, err)
		writeError(writer, http.StatusBadRequest, fmt.Sprintf("Error reading geometry: %s", err.Error()), err)
		return nil, false
	}

	geometry, err := grid.NewGeometry(orbGeometry)
	if err != nil {
		writeError(writer, http.StatusBadRequest, fmt.Sprintf("Unsupported geometry: %s", err.Error()), err)
		return nil, false
	}

	collection, err := profile.ApplyConcurrent(geometry, runtime.NumCPU())
	if err != nil {
		status := http.StatusInternalServerError
		if grid.IsConfigurationError(err) {
			status = http.StatusBadRequest
		}
		sigolo.Errorf("Error applying grid profile: %+v", err)
		writeError(writer, status, fmt.Sprintf("Error applying grid profile: %s", err.Error()), err)
		return nil, false
	}

	sigolo.Debugf("Found %d cells for request to '%s'", len(collection.Cells), request.URL.Path)
	return collection, true
}

// profileFromRequest uses the profile given by the "profile" query parameter (or the fine offset grid) and overrides
// its values with the optional "cellSize", "offset" and "round" parameters.
func profileFromRequest(request *http.Request) (grid.Profile, error) {
	query := request.URL.Query()

	profile := grid.FineOffsetGrid
	if name := query.Get("profile"); name != "" {
		var err error
		profile, err = grid.ProfileByName(name)
		if err != nil {
			return grid.Profile{}, err
		}
	}

	if value := query.Get("cellSize"); value != "" {
		cellSize, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return grid.Profile{}, errors.Wrapf(err, "Unable to parse cell size '%s'", value)
		}
		profile.Name = "custom"
		profile.CellSize = cellSize
	}

	if value := query.Get("offset"); value != "" {
		offset, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return grid.Profile{}, errors.Wrapf(err, "Unable to parse offset '%s'", value)
		}
		profile.Name = "custom"
		profile.Offset = offset
	}

	if value := query.Get("round"); value != "" {
		digits, err := strconv.Atoi(value)
		if err != nil {
			return grid.Profile{}, errors.Wrapf(err, "Unable to parse rounding digits '%s'", value)
		}
		profile.RoundDigits = digits
		profile.WithCentroids = true
	}

	return profile, profile.Validate()
}

func writeJson(writer http.ResponseWriter, value any) {
	responseBytes, err := json.Marshal(value)
	if err != nil {
		sigolo.Errorf("Error marshalling response: %+v", err)
		writeError(writer, http.StatusInternalServerError, "Error creating response.", err)
		return
	}

	writer.Header().Set("Access-Control-Allow-Origin", "*")
	writer.Header().Set("Content-Type", "application/json")
	_, err = writer.Write(responseBytes)
	if err != nil {
		sigolo.Errorf("Error writing response: %+v", err)
	}
}

func writeError(writer http.ResponseWriter, status int, message string, err error) {
	writer.Header().Set("Access-Control-Allow-Origin", "*")
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	errorResponseBytes, err := json.Marshal(NewErrorResponse(message, err))
	if err != nil {
		sigolo.Errorf("Error creating and marshalling error response object: %+v", err)
		return
	}

	_, err = writer.Write(errorResponseBytes)
	if err != nil {
		sigolo.Errorf("Error writing error response: %+v", err)
	}
}
