package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeQueue() *Queue {
	return &Queue{
		Name:                "Canteen Counter",
		Service_type:        ServiceCanteen,
		Status:              QueueActive,
		Max_capacity:        100,
		Estimated_wait_time: 5,
	}
}

func TestAddCustomerAssignsSequentialPositions(t *testing.T) {
	q := activeQueue()

	p1, err := q.AddCustomer("u1", "Alice")
	require.NoError(t, err)
	p2, err := q.AddCustomer("u2", "Bob")
	require.NoError(t, err)
	p3, err := q.AddCustomer("u3", "Carol")
	require.NoError(t, err)

	assert.Equal(t, 1, p1)
	assert.Equal(t, 2, p2)
	assert.Equal(t, 3, p3)
	assert.Equal(t, 3, q.Current_number)
	assert.Equal(t, 3, q.QueueLength())
}

func TestAddCustomerRejectsNonActiveQueue(t *testing.T) {
	for _, status := range []string{QueuePaused, QueueClosed} {
		q := activeQueue()
		q.Status = status

		_, err := q.AddCustomer("u1", "Alice")
		assert.ErrorIs(t, err, ErrQueueNotActive)
		assert.Empty(t, q.Customers)
	}
}

func TestAddCustomerRejectsDuplicateEntry(t *testing.T) {
	q := activeQueue()

	_, err := q.AddCustomer("u1", "Alice")
	require.NoError(t, err)

	_, err = q.AddCustomer("u1", "Alice")
	assert.ErrorIs(t, err, ErrAlreadyInQueue)

	// A called customer is still in line.
	_, err = q.CallNext()
	require.NoError(t, err)
	_, err = q.AddCustomer("u1", "Alice")
	assert.ErrorIs(t, err, ErrAlreadyInQueue)
}

func TestAddCustomerAllowsRejoinAfterServed(t *testing.T) {
	q := activeQueue()

	_, err := q.AddCustomer("u1", "Alice")
	require.NoError(t, err)
	_, err = q.CallNext()
	require.NoError(t, err)
	require.NoError(t, q.MarkServed("u1"))

	position, err := q.AddCustomer("u1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, 2, position)
}

func TestAddCustomerEnforcesCapacity(t *testing.T) {
	q := activeQueue()
	q.Max_capacity = 2

	_, err := q.AddCustomer("u1", "Alice")
	require.NoError(t, err)
	_, err = q.AddCustomer("u2", "Bob")
	require.NoError(t, err)

	_, err = q.AddCustomer("u3", "Carol")
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Len(t, q.Customers, 2)
}

func TestRemoveCustomerCompactsPositions(t *testing.T) {
	q := activeQueue()
	q.AddCustomer("u1", "Alice")
	q.AddCustomer("u2", "Bob")
	q.AddCustomer("u3", "Carol")

	removed := q.RemoveCustomer("u1")
	require.True(t, removed)

	require.Len(t, q.Customers, 2)
	assert.Equal(t, "u2", q.Customers[0].User_id)
	assert.Equal(t, 1, q.Customers[0].Position)
	assert.Equal(t, "u3", q.Customers[1].User_id)
	assert.Equal(t, 2, q.Customers[1].Position)
	assert.Equal(t, 2, q.Current_number)

	// A new joiner fills the compacted slot rather than getting ticket 4.
	position, err := q.AddCustomer("u4", "Dave")
	require.NoError(t, err)
	assert.Equal(t, 3, position)
}

func TestRemoveCustomerAbsentIsNoop(t *testing.T) {
	q := activeQueue()
	q.AddCustomer("u1", "Alice")

	removed := q.RemoveCustomer("u2")
	assert.False(t, removed)
	assert.Len(t, q.Customers, 1)
	assert.Equal(t, 1, q.Current_number)
}

func TestCallNextFlipsFirstWaiting(t *testing.T) {
	q := activeQueue()
	q.AddCustomer("u1", "Alice")
	q.AddCustomer("u2", "Bob")

	customer, err := q.CallNext()
	require.NoError(t, err)
	assert.Equal(t, "u1", customer.User_id)
	assert.Equal(t, CustomerCalled, customer.Status)
	assert.Equal(t, CustomerWaiting, q.Customers[1].Status)

	customer, err = q.CallNext()
	require.NoError(t, err)
	assert.Equal(t, "u2", customer.User_id)
}

func TestCallNextWithNobodyWaiting(t *testing.T) {
	q := activeQueue()

	_, err := q.CallNext()
	assert.ErrorIs(t, err, ErrNoOneWaiting)

	q.AddCustomer("u1", "Alice")
	_, err = q.CallNext()
	require.NoError(t, err)

	// Only a called customer left: nothing to call, nothing mutated.
	_, err = q.CallNext()
	assert.ErrorIs(t, err, ErrNoOneWaiting)
	assert.Equal(t, CustomerCalled, q.Customers[0].Status)
}

func TestMarkServedRequiresCalledStatus(t *testing.T) {
	q := activeQueue()
	q.AddCustomer("u1", "Alice")

	err := q.MarkServed("u1")
	assert.ErrorIs(t, err, ErrCustomerNotCalled)

	_, err = q.CallNext()
	require.NoError(t, err)
	require.NoError(t, q.MarkServed("u1"))
	assert.Equal(t, CustomerServed, q.Customers[0].Status)

	assert.ErrorIs(t, q.MarkServed("u2"), ErrNotInQueue)
}

func TestQueueLengthCountsOnlyWaiting(t *testing.T) {
	q := activeQueue()
	q.AddCustomer("u1", "Alice")
	q.AddCustomer("u2", "Bob")
	q.AddCustomer("u3", "Carol")
	q.CallNext()

	assert.Equal(t, 2, q.QueueLength())
	assert.Equal(t, 10, q.CurrentWaitTime())
}

func TestCanTransitionQueue(t *testing.T) {
	assert.True(t, CanTransitionQueue(QueueActive, QueuePaused))
	assert.True(t, CanTransitionQueue(QueuePaused, QueueActive))
	assert.True(t, CanTransitionQueue(QueueActive, QueueClosed))
	assert.True(t, CanTransitionQueue(QueuePaused, QueueClosed))

	// Closed is terminal.
	assert.False(t, CanTransitionQueue(QueueClosed, QueueActive))
	assert.False(t, CanTransitionQueue(QueueClosed, QueuePaused))
}
