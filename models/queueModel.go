package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	QueueActive = "active"
	QueuePaused = "paused"
	QueueClosed = "closed"

	CustomerWaiting = "waiting"
	CustomerCalled  = "called"
	CustomerServed  = "served"
	CustomerLeft    = "left"
)

var (
	ErrQueueNotActive    = errors.New("queue is not active")
	ErrQueueClosed       = errors.New("queue is closed")
	ErrAlreadyInQueue    = errors.New("already in queue")
	ErrQueueFull         = errors.New("queue is full")
	ErrNoOneWaiting      = errors.New("no customers waiting")
	ErrNotInQueue        = errors.New("not in queue")
	ErrCustomerNotCalled = errors.New("customer has not been called")
)

type QueueCustomer struct {
	User_id   string    `bson:"user_id" json:"userId"`
	Name      string    `bson:"name" json:"name"`
	Joined_at time.Time `bson:"joined_at" json:"joinedAt"`
	Position  int       `bson:"position" json:"position"`
	Status    string    `bson:"status" json:"status"`
}

type Queue struct {
	ID                  primitive.ObjectID `bson:"_id" json:"-"`
	Queue_id            string             `bson:"queue_id" json:"id"`
	Name                string             `bson:"name" json:"name" validate:"required,min=2"`
	Service_type        string             `bson:"service_type" json:"serviceType" validate:"required,eq=canteen|eq=xerox"`
	Current_number      int                `bson:"current_number" json:"currentNumber"`
	Customers           []QueueCustomer    `bson:"customers" json:"customers"`
	Status              string             `bson:"status" json:"status"`
	Max_capacity        int                `bson:"max_capacity" json:"maxCapacity"`
	Estimated_wait_time int                `bson:"estimated_wait_time" json:"estimatedWaitTime"`
	Created_at          time.Time          `bson:"created_at" json:"createdAt"`
	Updated_at          time.Time          `bson:"updated_at" json:"updatedAt"`
}

// QueueLength counts customers still waiting to be called.
func (q *Queue) QueueLength() int {
	count := 0
	for _, customer := range q.Customers {
		if customer.Status == CustomerWaiting {
			count++
		}
	}
	return count
}

// CurrentWaitTime estimates minutes until a new joiner would be served.
func (q *Queue) CurrentWaitTime() int {
	return q.QueueLength() * q.Estimated_wait_time
}

// AddCustomer appends a customer with the next position in line. Positions
// are the 1-based index in the customer list, so Current_number always equals
// the list length.
func (q *Queue) AddCustomer(userId string, name string) (int, error) {
	if q.Status != QueueActive {
		return 0, ErrQueueNotActive
	}
	for _, customer := range q.Customers {
		if customer.User_id == userId &&
			(customer.Status == CustomerWaiting || customer.Status == CustomerCalled) {
			return 0, ErrAlreadyInQueue
		}
	}
	if q.Max_capacity > 0 && q.QueueLength() >= q.Max_capacity {
		return 0, ErrQueueFull
	}

	position := len(q.Customers) + 1
	q.Current_number = position
	q.Customers = append(q.Customers, QueueCustomer{
		User_id:   userId,
		Name:      name,
		Joined_at: time.Now(),
		Position:  position,
		Status:    CustomerWaiting,
	})
	return position, nil
}

// RemoveCustomer drops the user's entry and renumbers the remaining
// customers to a contiguous 1..n sequence. Removing an absent user is a
// no-op. Returns whether an entry was removed.
func (q *Queue) RemoveCustomer(userId string) bool {
	index := -1
	for i, customer := range q.Customers {
		if customer.User_id == userId {
			index = i
			break
		}
	}
	if index == -1 {
		return false
	}

	q.Customers = append(q.Customers[:index], q.Customers[index+1:]...)
	for i := range q.Customers {
		q.Customers[i].Position = i + 1
	}
	q.Current_number = len(q.Customers)
	return true
}

// CallNext flips the first waiting customer to called and returns it. No
// entry is removed and no other entry changes.
func (q *Queue) CallNext() (*QueueCustomer, error) {
	for i := range q.Customers {
		if q.Customers[i].Status == CustomerWaiting {
			q.Customers[i].Status = CustomerCalled
			return &q.Customers[i], nil
		}
	}
	return nil, ErrNoOneWaiting
}

// MarkServed completes service for a called customer.
func (q *Queue) MarkServed(userId string) error {
	for i := range q.Customers {
		if q.Customers[i].User_id == userId {
			if q.Customers[i].Status != CustomerCalled {
				return ErrCustomerNotCalled
			}
			q.Customers[i].Status = CustomerServed
			return nil
		}
	}
	return ErrNotInQueue
}

// FindCustomer returns the user's entry, or nil if absent.
func (q *Queue) FindCustomer(userId string) *QueueCustomer {
	for i := range q.Customers {
		if q.Customers[i].User_id == userId {
			return &q.Customers[i]
		}
	}
	return nil
}

// CanTransitionQueue reports whether an admin status change is allowed.
// Closed queues stay closed.
func CanTransitionQueue(from string, to string) bool {
	switch from {
	case QueueActive:
		return to == QueuePaused || to == QueueClosed
	case QueuePaused:
		return to == QueueActive || to == QueueClosed
	}
	return false
}
