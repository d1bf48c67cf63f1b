package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"log/slog"

	"stockboard/internal/daemon"
	"stockboard/internal/logging"
	"stockboard/internal/services"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	handler := &service{daemon: d, logger: logger, ctx: ctx}
	if err := rpcServer.RegisterName("Stockboard", handler); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon *daemon.Daemon
	logger *slog.Logger
	ctx    context.Context
}

func (s *service) log() *slog.Logger {
	if s.logger == nil {
		return logging.NewNop()
	}
	return s.logger.With(logging.String(logging.FieldComponent, "ipc"))
}

// requestCtx tags each RPC with a fresh correlation id so log lines from one
// command can be grouped.
func (s *service) requestCtx() context.Context {
	return services.EnsureRequestID(s.ctx)
}

func (s *service) Ping(_ PingRequest, resp *PingResponse) error {
	resp.Alive = true
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.log().Debug("daemon stop requested")
	s.daemon.Stop()
	resp.Stopped = true
	s.log().Info("daemon stopped via IPC")
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	resp.Status = s.daemon.Status(s.requestCtx())
	return nil
}

func (s *service) StageList(_ StageListRequest, resp *StageListResponse) error {
	resp.Stages = s.daemon.Service().ListStages().Stages
	return nil
}

func (s *service) StockList(req StockListRequest, resp *StockListResponse) error {
	list, err := s.daemon.Service().ListStocks(s.requestCtx(), apiFilter(req))
	if err != nil {
		return err
	}
	resp.Stocks = list.Stocks
	return nil
}

func (s *service) StockDescribe(req StockDescribeRequest, resp *StockDescribeResponse) error {
	if req.ID <= 0 {
		return fmt.Errorf("invalid stock id %d", req.ID)
	}
	stock, err := s.daemon.Service().Describe(s.requestCtx(), req.ID)
	if err != nil {
		return err
	}
	if stock == nil {
		return fmt.Errorf("stock %d not found", req.ID)
	}
	resp.Stock = *stock
	return nil
}

func (s *service) StockAdd(req StockAddRequest, resp *StockAddResponse) error {
	ctx := s.requestCtx()
	s.log().Debug("stock add requested", logging.String("ticker", req.Ticker))
	stock, err := s.daemon.Service().Create(ctx, apiCreate(req))
	if err != nil {
		return err
	}
	resp.Stock = *stock
	return nil
}

func (s *service) StockMove(req StockMoveRequest, resp *StockMoveResponse) error {
	ctx := services.WithStockID(s.requestCtx(), req.ID)
	s.log().Debug("stock move requested",
		logging.Int64(logging.FieldStockID, req.ID),
		logging.String("target", req.TargetStage),
		logging.Bool("forced", req.Forced))
	stock, err := s.daemon.Service().Move(ctx, apiMove(req))
	if err != nil {
		return err
	}
	resp.Stock = *stock
	return nil
}

func (s *service) StockRemove(req StockRemoveRequest, resp *StockRemoveResponse) error {
	if req.ID <= 0 {
		return fmt.Errorf("invalid stock id %d", req.ID)
	}
	removed, err := s.daemon.Service().Delete(s.requestCtx(), req.ID)
	if err != nil {
		return err
	}
	resp.Removed = removed
	return nil
}

func (s *service) StockLogs(req StockLogsRequest, resp *StockLogsResponse) error {
	if req.ID <= 0 {
		return fmt.Errorf("invalid stock id %d", req.ID)
	}
	logs, err := s.daemon.Service().Logs(s.requestCtx(), req.ID)
	if err != nil {
		return err
	}
	resp.Entries = logs.Entries
	return nil
}

func (s *service) ValidateMove(req ValidateRequest, resp *ValidateResponse) error {
	resp.Result = s.daemon.Service().Validate(req.CurrentStage, req.TargetStage)
	return nil
}

func (s *service) RefreshAges(_ RefreshAgesRequest, resp *RefreshAgesResponse) error {
	resp.Updated = s.daemon.Service().RecomputeAges(s.requestCtx())
	return nil
}

func (s *service) TestNotification(_ TestNotificationRequest, resp *TestNotificationResponse) error {
	sent, message, err := s.daemon.TestNotification(s.requestCtx())
	resp.Sent = sent
	resp.Message = message
	return err
}
