// Package ethereum checks anchoring transactions against an Ethereum JSON-RPC node.
//
// A check looks the transaction up, requires a successful receipt, and then
// searches the calldata and emitted logs for the anchored digest, either as
// 32 raw bytes or as its hex text. The result annotates an inspection; it never
// changes the verdict, which is derived only from the evidence store's data.
package ethereum

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.LedgerClient = (*Client)(nil)

// RPC is the subset of ethclient.Client used for checks.
type RPC interface {
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// Client checks ledger references.
type Client struct {
	rpc   RPC
	close func()
}

// Dial connects to a JSON-RPC endpoint.
func Dial(ctx context.Context, rawURL string) (*Client, error) {
	ec, err := ethclient.DialContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", domain.ErrLedgerUnavailable, rawURL, err)
	}
	return &Client{rpc: ec, close: ec.Close}, nil
}

// New wraps an existing RPC client.
func New(rpc RPC) *Client {
	return &Client{rpc: rpc}
}

// Close releases the RPC connection.
func (c *Client) Close() {
	if c.close != nil {
		c.close()
	}
}

// Check reports whether transaction ref is mined, succeeded, and carries anchoredHash.
// Transport failures are returned as errors.
func (c *Client) Check(ctx context.Context, ref, anchoredHash string) (*domain.LedgerCheck, error) {
	if _, err := domain.ParseLedgerReference(ref); err != nil {
		return nil, err
	}
	check := &domain.LedgerCheck{Reference: ref}
	hash := common.HexToHash(ref)

	tx, pending, err := c.rpc.TransactionByHash(ctx, hash)
	switch {
	case errors.Is(err, ethereum.NotFound):
		check.Status = domain.LedgerFailed
		check.Detail = "transaction not found"
		return check, nil
	case err != nil:
		return nil, fmt.Errorf("%w: transaction lookup: %v", domain.ErrLedgerUnavailable, err)
	case pending:
		check.Status = domain.LedgerPending
		check.Detail = "transaction not yet mined"
		return check, nil
	}

	receipt, err := c.rpc.TransactionReceipt(ctx, hash)
	switch {
	case errors.Is(err, ethereum.NotFound):
		check.Status = domain.LedgerPending
		check.Detail = "receipt not yet available"
		return check, nil
	case err != nil:
		return nil, fmt.Errorf("%w: receipt lookup: %v", domain.ErrLedgerUnavailable, err)
	}

	if receipt.BlockNumber != nil {
		check.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		check.Status = domain.LedgerFailed
		check.Detail = "transaction reverted"
		return check, nil
	}

	if carriesDigest(tx, receipt, anchoredHash) {
		check.Status = domain.LedgerConfirmed
		check.Detail = fmt.Sprintf("anchored in block %d", check.BlockNumber)
		return check, nil
	}
	check.Status = domain.LedgerNotIncluded
	check.Detail = "anchored hash not found in transaction data or logs"
	return check, nil
}

func carriesDigest(tx *types.Transaction, receipt *types.Receipt, anchoredHash string) bool {
	if !domain.IsDigest(anchoredHash) {
		return false
	}
	text := []byte(domain.NormalizeHash(anchoredHash))
	raw, err := hex.DecodeString(string(text))
	if err != nil {
		return false
	}
	needle := common.BytesToHash(raw)

	contains := func(b []byte) bool {
		return bytes.Contains(b, raw) || bytes.Contains(bytes.ToLower(b), text)
	}

	if tx != nil && contains(tx.Data()) {
		return true
	}
	for _, log := range receipt.Logs {
		for _, topic := range log.Topics {
			if topic == needle {
				return true
			}
		}
		if contains(log.Data) {
			return true
		}
	}
	return false
}
