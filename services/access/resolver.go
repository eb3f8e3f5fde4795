// Package access decides whether a viewer may watch a course.
package access

import (
	"context"
	"errors"
	"fmt"

	"tincadia/models"
	"tincadia/models/course"
)

// ErrLoadFailed wraps every failure to load the course or its purchase status.
// Callers render a generic error and never a partial page.
var ErrLoadFailed = errors.New("failed to load course")

type CourseSource interface {
	GetCourse(ctx context.Context, id string) (*course.Course, error)
}

type PurchaseChecker interface {
	HasPurchased(ctx context.Context, userID, productID string, productType models.ProductType) (bool, error)
}

type Reason string

const (
	ReasonFree         Reason = "free"
	ReasonPurchased    Reason = "purchased"
	ReasonNotPurchased Reason = "not_purchased"
	ReasonAnonymous    Reason = "anonymous"
)

// Decision is the outcome for one course and viewer
type Decision struct {
	Course    *course.Course `json:"course"`
	HasAccess bool           `json:"hasAccess"`
	Reason    Reason         `json:"reason"`
}

type Resolver struct {
	courses   CourseSource
	purchases PurchaseChecker
}

func NewResolver(courses CourseSource, purchases PurchaseChecker) *Resolver {
	return &Resolver{courses: courses, purchases: purchases}
}

// Resolve loads the course and decides access. userID is empty for anonymous viewers.
func (r *Resolver) Resolve(ctx context.Context, courseID, userID string) (*Decision, error) {
	c, err := r.courses.GetCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if c.ID == "" {
		c.ID = courseID
	}

	if c.IsFree() {
		return &Decision{Course: c, HasAccess: true, Reason: ReasonFree}, nil
	}
	if userID == "" {
		return &Decision{Course: c, HasAccess: false, Reason: ReasonAnonymous}, nil
	}

	purchased, err := r.purchases.HasPurchased(ctx, userID, c.ID, models.ProductTypeCourse)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if purchased {
		return &Decision{Course: c, HasAccess: true, Reason: ReasonPurchased}, nil
	}
	return &Decision{Course: c, HasAccess: false, Reason: ReasonNotPurchased}, nil
}
