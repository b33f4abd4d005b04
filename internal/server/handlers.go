package server

import (
    "encoding/json"
    "errors"
    "net/http"
    "net/url"
    "strconv"

    "github.com/gorilla/mux"
    "github.com/rs/zerolog"

    "wikiquiz/internal/extract"
    "wikiquiz/internal/fetch"
    "wikiquiz/internal/store"
)

type generateRequest struct {
    URL string `json:"url"`
}

// handleGenerate runs the full pipeline for a URL: cache check, fetch,
// extract, generate, persist. Repeat requests for the same URL return the
// stored record without re-fetching or re-generating.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
    ctx := r.Context()
    logger := zerolog.Ctx(ctx)

    var req generateRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        writeError(w, http.StatusBadRequest, "invalid request body")
        return
    }
    if !isValidPageURL(req.URL) {
        writeError(w, http.StatusBadRequest, "invalid URL; expected an absolute http(s) Wikipedia article URL")
        return
    }

    if rec, err := s.store.FindByURL(ctx, req.URL); err == nil {
        logger.Debug().Str("url", req.URL).Msg("serving stored quiz")
        writeJSON(w, http.StatusOK, rec)
        return
    } else if !errors.Is(err, store.ErrNotFound) {
        logger.Error().Err(err).Msg("cache lookup failed")
        writeError(w, http.StatusInternalServerError, "storage failure")
        return
    }

    body, err := s.fetcher.Get(ctx, req.URL)
    if err != nil {
        logger.Warn().Err(err).Str("url", req.URL).Msg("fetch failed")
        writeError(w, http.StatusBadRequest, "failed to fetch URL; check that it is a valid Wikipedia URL")
        return
    }

    article, err := s.extract(body)
    if err != nil {
        logger.Warn().Err(err).Str("url", req.URL).Msg("extraction failed")
        writeError(w, http.StatusBadRequest, "failed to extract article content from URL")
        return
    }

    result, err := s.generator.Generate(ctx, article.Content, article.Sections)
    if err != nil {
        logger.Error().Err(err).Msg("generation failed")
        writeError(w, http.StatusInternalServerError, "failed to generate quiz; please try again")
        return
    }

    rec := &store.Record{
        URL:           req.URL,
        Title:         article.Title,
        Summary:       article.Summary,
        KeyEntities:   article.KeyEntities,
        Sections:      article.Sections,
        Questions:     result.Questions,
        RelatedTopics: result.RelatedTopics,
        RawHTML:       article.RawHTML,
    }
    if err := s.store.Create(ctx, rec); err != nil {
        if errors.Is(err, store.ErrDuplicate) {
            // Lost a same-URL race; the winner's record is authoritative.
            if existing, ferr := s.store.FindByURL(ctx, req.URL); ferr == nil {
                writeJSON(w, http.StatusOK, existing)
                return
            }
        }
        logger.Error().Err(err).Msg("persist failed")
        writeError(w, http.StatusInternalServerError, "failed to store quiz")
        return
    }

    logger.Info().Str("url", req.URL).Uint("id", rec.ID).Int("questions", len(rec.Questions)).Msg("quiz generated")
    writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
    list, err := s.store.List(r.Context())
    if err != nil {
        zerolog.Ctx(r.Context()).Error().Err(err).Msg("list failed")
        writeError(w, http.StatusInternalServerError, "storage failure")
        return
    }
    writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetByID(w http.ResponseWriter, r *http.Request) {
    rec, ok := s.lookupByID(w, r)
    if !ok {
        return
    }
    writeJSON(w, http.StatusOK, rec)
}

func (s *Server) lookupByID(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
    id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
    if err != nil {
        writeError(w, http.StatusBadRequest, "invalid quiz id")
        return nil, false
    }
    rec, err := s.store.FindByID(r.Context(), uint(id))
    if errors.Is(err, store.ErrNotFound) {
        writeError(w, http.StatusNotFound, "quiz not found")
        return nil, false
    }
    if err != nil {
        zerolog.Ctx(r.Context()).Error().Err(err).Msg("lookup failed")
        writeError(w, http.StatusInternalServerError, "storage failure")
        return nil, false
    }
    return rec, true
}

func isValidPageURL(raw string) bool {
    u, err := url.Parse(raw)
    if err != nil {
        return false
    }
    return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// compile-time checks that the concrete collaborators satisfy the handler
// interfaces.
var (
    _ Fetcher   = (*fetch.Client)(nil)
    _ Extractor = extract.FromHTML
)
