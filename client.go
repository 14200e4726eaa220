package prd

import (
	"context"
	"io"

	v1 "github.com/emrgen/prd/apis/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// Client talks to the PRD grpc service.
type Client interface {
	io.Closer
	v1.PRDServiceClient
}

type client struct {
	conn *grpc.ClientConn
	v1.PRDServiceClient
}

// NewClient connects to the grpc server at addr, e.g. "localhost:4020".
func NewClient(addr string) (Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &client{
		conn:             conn,
		PRDServiceClient: v1.NewPRDServiceClient(conn),
	}, nil
}

func (c *client) Close() error {
	return c.conn.Close()
}

// WithToken authenticates the calls made with the returned context.
func WithToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}
