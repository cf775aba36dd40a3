// Package routing distributes VMs and workload units to the brokers that
// own them.
package routing

import (
	"github.com/GoSim-25-26J-441/campus-cloud-sim/pkg/models"
)

// Owned is anything carrying an owning broker id
type Owned interface {
	Owner() models.BrokerID
}

// Assignment is the result of routing one list. Buckets keep input order.
// Items whose broker is unknown are kept in Unassigned.
type Assignment[T Owned] struct {
	Brokers    []models.BrokerID
	Buckets    map[models.BrokerID][]T
	Unassigned []T
}

// Route partitions items by owning broker. Every known broker gets a bucket,
// possibly empty.
func Route[T Owned](items []T, brokers []models.BrokerID) Assignment[T] {
	a := Assignment[T]{
		Brokers: make([]models.BrokerID, 0, len(brokers)),
		Buckets: make(map[models.BrokerID][]T, len(brokers)),
	}
	for _, b := range brokers {
		if _, dup := a.Buckets[b]; dup {
			continue
		}
		a.Brokers = append(a.Brokers, b)
		a.Buckets[b] = make([]T, 0)
	}

	for _, item := range items {
		owner := item.Owner()
		if bucket, ok := a.Buckets[owner]; ok {
			a.Buckets[owner] = append(bucket, item)
			continue
		}
		a.Unassigned = append(a.Unassigned, item)
	}
	return a
}

// Bucket returns the items routed to broker
func (a Assignment[T]) Bucket(broker models.BrokerID) []T {
	return a.Buckets[broker]
}

// Assigned returns the number of items in broker buckets
func (a Assignment[T]) Assigned() int {
	n := 0
	for _, bucket := range a.Buckets {
		n += len(bucket)
	}
	return n
}

// Total returns assigned plus unassigned items; it equals the input length
func (a Assignment[T]) Total() int {
	return a.Assigned() + len(a.Unassigned)
}
