package internal

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rm-hull/voronoi-fragments/internal/fragment"
	"github.com/rm-hull/voronoi-fragments/internal/raster/stage"
)

const fragmentsPath = "/v1/fragments"

type PieceResponse struct {
	URL           string `json:"url"`
	FragmentCount int    `json:"fragmentCount"`
	FragmentIDs   []int  `json:"fragmentIds"`
}

type SplitResponse struct {
	Job    string          `json:"job"`
	Pieces []PieceResponse `json:"pieces"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SplitHandler struct {
	rootDir  string
	defaults Config
}

// RegisterRoutes mounts the split endpoint and serves stored pieces from rootDir.
func RegisterRoutes(r *gin.Engine, rootDir string, defaults Config) {
	h := &SplitHandler{rootDir: rootDir, defaults: defaults}
	r.POST("/v1/split", h.Split)
	r.Static(fragmentsPath, rootDir)
}

// Split accepts a multipart upload: "image" plus optional "pieces", "fragments",
// "background", "invert" and "seed" fields overriding the server defaults.
func (h *SplitHandler) Split(c *gin.Context) {
	cfg, err := h.formConfig(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing image upload"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	defer func() {
		_ = f.Close()
	}()

	pieces, err := fragment.NewSplitter(cfg.Rand()).SplitReader(f, cfg.SplitOptions(), &stage.FitStage{MaxSize: cfg.MaxSize})
	if err != nil {
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	job, err := newJobId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	paths, err := SavePieces(filepath.Join(h.rootDir, job), fh.Filename, pieces, cfg.Background)
	if err != nil {
		log.Printf("Failed to save pieces for job %s: %v", job, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save pieces"})
		return
	}

	resp := SplitResponse{Job: job, Pieces: make([]PieceResponse, len(pieces))}
	for i, piece := range pieces {
		resp.Pieces[i] = PieceResponse{
			URL:           path.Join(fragmentsPath, job, filepath.Base(paths[i])),
			FragmentCount: piece.FragmentCount,
			FragmentIDs:   piece.FragmentIDs,
		}
	}
	log.Printf("Job %s: split %s into %d pieces", job, fh.Filename, len(pieces))
	c.JSON(http.StatusCreated, resp)
}

func (h *SplitHandler) formConfig(c *gin.Context) (Config, error) {
	cfg := h.defaults

	ints := map[string]*int{
		"pieces":    &cfg.Pieces,
		"fragments": &cfg.Fragments,
	}
	for field, dst := range ints {
		if v, ok := c.GetPostForm(field); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return cfg, fmt.Errorf("%w: %s must be an integer", fragment.ErrInvalidConfiguration, field)
			}
			*dst = n
		}
	}

	if v, ok := c.GetPostForm("background"); ok {
		bg, err := fragment.ParseBackground(v)
		if err != nil {
			return cfg, err
		}
		cfg.Background = bg
	}

	if v, ok := c.GetPostForm("invert"); ok {
		invert, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%w: invert must be a boolean", fragment.ErrInvalidConfiguration)
		}
		cfg.Invert = invert
	}

	if v, ok := c.GetPostForm("seed"); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%w: seed must be an integer", fragment.ErrInvalidConfiguration)
		}
		cfg.Seed = seed
	}

	return cfg, cfg.SplitOptions().Validate()
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, fragment.ErrInvalidConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, fragment.ErrImageDecode), errors.Is(err, fragment.ErrEmptyInput):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func newJobId() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("failed to generate job id: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
