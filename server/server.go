/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package server exposes SMILES rendering over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"bennypowers.dev/smidraw/convert"
	"bennypowers.dev/smidraw/depict"
	smifs "bennypowers.dev/smidraw/fs"
	"bennypowers.dev/smidraw/internal/logger"
	"bennypowers.dev/smidraw/internal/version"
)

// MaxSize bounds the image size a client may request.
const MaxSize = 4096

// Server serves /render, /describe and /healthz.
type Server struct {
	Engine      *gin.Engine
	conv        *convert.Converter
	defaultSize int
}

// RenderRequest is the JSON body accepted by POST /render.
type RenderRequest struct {
	SMILES string `json:"smiles" binding:"required"`
	Size   int    `json:"size"`
}

// New builds the gin engine. Requests without a size use opts.Size.
func New(filesystem smifs.FileSystem, opts depict.Options) *Server {
	s := &Server{
		Engine:      gin.Default(),
		conv:        convert.New(filesystem, opts),
		defaultSize: opts.Size,
	}
	if s.defaultSize <= 0 {
		s.defaultSize = depict.DefaultSize
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Engine.GET("/healthz", s.handleHealth)
	s.Engine.GET("/render", s.handleRenderQuery)
	s.Engine.POST("/render", s.handleRenderJSON)
	s.Engine.GET("/describe", s.handleDescribe)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("Listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
}

func (s *Server) handleRenderQuery(c *gin.Context) {
	size := s.defaultSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be an integer"})
			return
		}
		size = n
	}
	s.render(c, c.Query("smiles"), size)
}

func (s *Server) handleRenderJSON(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	size := req.Size
	if size == 0 {
		size = s.defaultSize
	}
	s.render(c, req.SMILES, size)
}

func (s *Server) render(c *gin.Context, smi string, size int) {
	if smi == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "smiles is required"})
		return
	}
	if size <= 0 || size > MaxSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 1 and " + strconv.Itoa(MaxSize)})
		return
	}

	data, _, err := s.conv.Render(smi, size)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": convert.Message(err)})
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func (s *Server) handleDescribe(c *gin.Context) {
	smi := c.Query("smiles")
	if smi == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "smiles is required"})
		return
	}
	d, err := convert.Describe(smi)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": convert.Message(err)})
		return
	}
	c.JSON(http.StatusOK, d)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, convert.ErrInvalidSmiles),
		errors.Is(err, convert.ErrKekulize),
		errors.Is(err, depict.ErrSize):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
