package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "Paid"
	PaymentPending  PaymentStatus = "Pending"
	PaymentRefunded PaymentStatus = "Refunded"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCompleted BookingStatus = "Completed"
	BookingCanceled  BookingStatus = "Canceled"
)

// Booking links an activity, the customer's display name captured at booking
// time, a guide and a tour date. UserID records the account that entered the
// booking, which is not necessarily the customer named on it.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Activity      primitive.ObjectID `bson:"activity" json:"activity"`
	CustomerName  string             `bson:"customerName" json:"customerName"`
	GuideName     string             `bson:"guideName" json:"guideName"`
	TourDate      time.Time          `bson:"tourDate" json:"tourDate"`
	PaymentStatus PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	BookingStatus BookingStatus      `bson:"bookingStatus" json:"bookingStatus"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BookingWithActivity is a booking joined with its activity document for
// admin listings.
type BookingWithActivity struct {
	Booking     `bson:",inline"`
	ActivityDoc *Activity `bson:"activityDoc,omitempty" json:"activityDoc,omitempty"`
}

func (p PaymentStatus) Valid() bool {
	return p == PaymentPaid || p == PaymentPending || p == PaymentRefunded
}

func (b BookingStatus) Valid() bool {
	return b == BookingConfirmed || b == BookingCompleted || b == BookingCanceled
}
