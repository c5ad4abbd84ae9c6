package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/fictadex/aggregate"
	"github.com/jsphweid/fictadex/corpus"
	"github.com/jsphweid/fictadex/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var watch bool

func init() {
	serveCmd.Flags().BoolVar(&watch, "watch", false, "reload the corpus file when it changes")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the analysis over HTTP",
	Long: `Serves the analysis over HTTP:

  POST /analyze                          {"voices": [{"name": "C", "notes": "..."}, ...]}
  GET  /works/{index}
  GET  /corrections?type=Maj3&start=2&end=459`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		src, mem, err := openSource()
		if err != nil {
			return err
		}

		if watch {
			if mem == nil {
				return errors.New("--watch needs a corpus file, not DynamoDB")
			}
			go func() {
				err := corpus.Watch(ctx, corpusPath, func(works []*model.Work, err error) {
					if err != nil {
						logger.Error("could not reload corpus", "path", corpusPath, "err", err)
						return
					}
					mem.Replace(works)
					logger.Info("reloaded corpus", "path", corpusPath, "works", len(works))
				})
				if err != nil {
					logger.Error("stopped watching corpus", "path", corpusPath, "err", err)
				}
			}()
		}

		srv := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           NewRouter(src, logger, pieceRange()),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		logger.Info("listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

type server struct {
	source corpus.Source
	logger *slog.Logger
	// used by /corrections when start or end is left out
	defaults aggregate.Range
}

func NewRouter(source corpus.Source, logger *slog.Logger, defaults aggregate.Range) http.Handler {
	s := &server{source: source, logger: logger, defaults: defaults}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)
	router.HandleFunc("/works/{index:[0-9]+}", s.handleWork).Methods(http.MethodGet)
	router.HandleFunc("/corrections", s.handleCorrections).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}
	var input model.AnalyzeRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		s.writeError(w, http.StatusBadRequest, "could not unmarshal request body: "+err.Error())
		return
	}
	if len(input.Voices) != 2 {
		s.writeError(w, http.StatusBadRequest, "exactly 2 voices are needed")
		return
	}

	upper, err := corpus.ParseVoice(input.Voices[0].Name, input.Voices[0].Notes)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lower, err := corpus.ParseVoice(input.Voices[1].Name, input.Voices[1].Notes)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := analyzeVoices(upper, lower)
	if err != nil {
		// an interval outside the octave and the like
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *server) handleWork(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "bad piece index")
		return
	}
	work, err := s.source.Work(r.Context(), index)
	if errors.Is(err, corpus.ErrWorkNotFound) {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.logger.Error("could not load work", "piece", index, "err", err)
		s.writeError(w, http.StatusInternalServerError, "could not load work")
		return
	}

	s.writeJSON(w, http.StatusOK, analyzeWork(work, s.logger))
}

func (s *server) handleCorrections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	typ := q.Get("type")
	if typ == "" {
		typ = aggregate.Maj3.Name
	}
	rng := s.defaults
	for _, p := range []struct {
		name string
		dst  *int
	}{{"start", &rng.Start}, {"end", &rng.End}} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, p.name+" is not a number")
			return
		}
		*p.dst = n
	}
	if err := rng.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := aggregate.New(s.source, s.logger).FindCorrections(r.Context(), typ, rng)
	var invalid *aggregate.InvalidCorrectionTypeError
	switch {
	case errors.As(err, &invalid):
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error("correction search failed", "type", typ, "err", err)
		s.writeError(w, http.StatusInternalServerError, "correction search failed")
		return
	}
	if res.Found == nil {
		res.Found = []aggregate.Found{}
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("could not write response", "err", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, model.ErrorResponse{Error: msg})
}
