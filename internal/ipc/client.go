package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Ping checks daemon liveness.
func (c *Client) Ping() (*PingResponse, error) {
	var resp PingResponse
	if err := c.client.Call("Stockboard.Ping", PingRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests daemon shutdown.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Stockboard.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves combined daemon and board status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Stockboard.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StageList returns the ordered stage list with counts.
func (c *Client) StageList() (*StageListResponse, error) {
	var resp StageListResponse
	if err := c.client.Call("Stockboard.StageList", StageListRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StockList returns stocks filtered by the request.
func (c *Client) StockList(req StockListRequest) (*StockListResponse, error) {
	var resp StockListResponse
	if err := c.client.Call("Stockboard.StockList", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StockDescribe returns details for a single stock.
func (c *Client) StockDescribe(id int64) (*StockDescribeResponse, error) {
	var resp StockDescribeResponse
	if err := c.client.Call("Stockboard.StockDescribe", StockDescribeRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StockAdd creates a stock.
func (c *Client) StockAdd(req StockAddRequest) (*StockAddResponse, error) {
	var resp StockAddResponse
	if err := c.client.Call("Stockboard.StockAdd", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StockMove applies a transition.
func (c *Client) StockMove(req StockMoveRequest) (*StockMoveResponse, error) {
	var resp StockMoveResponse
	if err := c.client.Call("Stockboard.StockMove", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StockRemove removes a stock by id.
func (c *Client) StockRemove(id int64) (*StockRemoveResponse, error) {
	var resp StockRemoveResponse
	if err := c.client.Call("Stockboard.StockRemove", StockRemoveRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StockLogs returns the audit trail for a stock id, newest first.
func (c *Client) StockLogs(id int64) (*StockLogsResponse, error) {
	var resp StockLogsResponse
	if err := c.client.Call("Stockboard.StockLogs", StockLogsRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateMove classifies a transition without applying it.
func (c *Client) ValidateMove(current, target string) (*ValidateResponse, error) {
	var resp ValidateResponse
	req := ValidateRequest{CurrentStage: current, TargetStage: target}
	if err := c.client.Call("Stockboard.ValidateMove", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshAges recomputes stock ages on the daemon.
func (c *Client) RefreshAges() (*RefreshAgesResponse, error) {
	var resp RefreshAgesResponse
	if err := c.client.Call("Stockboard.RefreshAges", RefreshAgesRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TestNotification triggers a notification test via the daemon.
func (c *Client) TestNotification() (*TestNotificationResponse, error) {
	var resp TestNotificationResponse
	if err := c.client.Call("Stockboard.TestNotification", TestNotificationRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
