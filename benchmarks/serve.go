package benchmarks

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/zeu5/room-explorer/explore"
	"github.com/zeu5/room-explorer/room"
	"github.com/zeu5/room-explorer/types"
)

// episodeRequest describes the episode to play. Every field is optional;
// pointers left nil keep the server's configuration.
type episodeRequest struct {
	// Pattern is a level description holding a MAP ... ENDMAP block
	Pattern     string   `json:"pattern"`
	PatternName string   `json:"pattern_name"`
	Seed        uint64   `json:"seed"`
	Truth       *int     `json:"truth"`
	Threshold   *float64 `json:"threshold"`
	Policy      *string  `json:"policy"`
	Distance    *string  `json:"distance"`
	Heuristic   *string  `json:"heuristic"`
	Diagonal    *bool    `json:"diagonal"`
	MaxMoves    *int     `json:"max_moves"`
	Trace       bool     `json:"trace"`
}

type episodeResponse struct {
	EpisodeID string          `json:"episode_id"`
	Pattern   string          `json:"pattern"`
	Seed      uint64          `json:"seed"`
	Truth     int             `json:"truth"`
	TruthName string          `json:"truth_name"`
	Guess     string          `json:"guess"`
	Correct   bool            `json:"correct"`
	Result    *explore.Result `json:"result"`
	Trace     *types.Trace    `json:"trace,omitempty"`
}

// EpisodeServer plays one generated room per request.
type EpisodeServer struct {
	Addr    string
	setup   *setup
	timeout time.Duration
	server  *http.Server
}

func NewEpisodeServer(s *setup, addr string, timeout time.Duration) *EpisodeServer {
	f := &EpisodeServer{
		Addr:    addr,
		setup:   s,
		timeout: timeout,
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	v1 := r.Group("/v1")
	v1.GET("/health", f.handleHealth)
	v1.POST("/episodes", f.handleEpisode)
	f.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return f
}

func (f *EpisodeServer) Handler() http.Handler {
	return f.server.Handler
}

// Start serves until Shutdown is called.
func (f *EpisodeServer) Start() error {
	if err := f.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (f *EpisodeServer) Shutdown(ctx context.Context) error {
	return f.server.Shutdown(ctx)
}

func (f *EpisodeServer) handleHealth(c *gin.Context) {
	names := make([]string, len(f.setup.patterns))
	for i, p := range f.setup.patterns {
		names[i] = p.Name
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"hypotheses": f.setup.tax.Hypotheses(),
		"patterns":   names,
	})
}

func (f *EpisodeServer) handleEpisode(c *gin.Context) {
	req := episodeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}

	s, err := f.requestSetup(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	gen := room.NewGenerator(s.tax, s.patterns, s.cfg.Spins, seed)
	var r *room.Room
	if req.Truth != nil {
		r, err = gen.GenerateFor(*req.Truth)
	} else {
		r, err = gen.Generate()
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	ep, err := s.playRoom(ctx, r, seed, req.Trace)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	res := ep.Result
	resp := episodeResponse{
		EpisodeID: res.EpisodeID,
		Pattern:   r.Pattern,
		Seed:      seed,
		Truth:     r.Truth,
		TruthName: s.tax.Goal(r.Truth).Name,
		Guess:     s.tax.Goal(res.Hypothesis).Name,
		Correct:   res.Hypothesis == r.Truth,
		Result:    res,
	}
	if req.Trace {
		res.Trace.Truth = r.Truth
		resp.Trace = res.Trace
	}
	c.JSON(http.StatusOK, resp)
}

// requestSetup applies the overrides of req to the server's setup.
func (f *EpisodeServer) requestSetup(req *episodeRequest) (*setup, error) {
	c := f.setup.cfg
	if req.Threshold != nil {
		c.Threshold = *req.Threshold
	}
	if req.Policy != nil {
		c.Policy = *req.Policy
	}
	if req.Distance != nil {
		c.Distance = *req.Distance
	}
	if req.Heuristic != nil {
		c.Heuristic = *req.Heuristic
	}
	if req.Diagonal != nil {
		c.Diagonal = *req.Diagonal
	}
	if req.MaxMoves != nil {
		c.MaxMoves = *req.MaxMoves
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if _, err := exploreConfig(c, nil, false); err != nil {
		return nil, err
	}

	s := f.setup.with(c)
	switch {
	case req.Pattern != "":
		p, err := room.ParsePattern("request", req.Pattern)
		if err != nil {
			return nil, err
		}
		s.patterns = []*room.Pattern{p}
	case req.PatternName != "":
		p, err := findPattern(s.patterns, req.PatternName)
		if err != nil {
			return nil, err
		}
		s.patterns = []*room.Pattern{p}
	}
	return s, nil
}

func ServeCommand() *cobra.Command {
	var timeout time.Duration
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve episodes over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSetup(cfg, os.Stderr)
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			if addr == "" {
				addr = cfg.ServerAddr
			}
			server := NewEpisodeServer(s, addr, timeout)
			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()
			cmd.Printf("Serving episodes on %s\n", addr)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides EXPLORER_SERVER_ADDR")
	cmd.Flags().DurationVar(&timeout, "episode-timeout", 30*time.Second, "Time limit of one episode, 0 for none")
	return cmd
}
