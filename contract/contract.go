//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-relay/domain"
	"context"
	"net"
	"reflect"
	"time"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Transport is the datagram boundary: opaque payloads to and from
// endpoints, no delivery or ordering guarantee. Receive returns
// errors.ErrReceiveTimeout when no datagram arrived within timeout, so
// callers can poll and notice cancellation promptly.
type Transport interface {
	Send(payload []byte, to net.Addr) error
	Receive(timeout time.Duration) (payload []byte, from net.Addr, err error)
	LocalAddr() net.Addr
	Close() error
}

type IRegistry interface {
	Upsert(addr net.Addr, name string) domain.Session
	Touch(key string) bool
	Get(key string) (domain.Session, bool)
	Remove(key string) (domain.Session, bool)
	Snapshot() []domain.Session
	ActiveSnapshot(now time.Time, expiry time.Duration) []domain.Session
	RemoveExpired(now time.Time, expiry time.Duration) []domain.Session
	Len() int
}
