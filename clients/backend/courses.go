package backend

import (
	"context"
	"net/http"
	"net/url"

	"tincadia/models"
	"tincadia/models/course"
)

// GetCourse fetches a course with its ordered modules and lessons
func (c *Client) GetCourse(ctx context.Context, id string) (*course.Course, error) {
	var out course.Course
	if err := c.do(c.request(ctx), http.MethodGet, "/courses/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type purchaseStatus struct {
	HasPurchased bool `json:"hasPurchased"`
}

// HasPurchased asks whether userID holds an approved purchase of the product
func (c *Client) HasPurchased(ctx context.Context, userID, productID string, productType models.ProductType) (bool, error) {
	var out purchaseStatus
	req := c.request(ctx).SetQueryParams(map[string]string{
		"userId":      userID,
		"productId":   productID,
		"productType": string(productType),
	})
	if err := c.do(req, http.MethodGet, "/payments/purchase-status", &out); err != nil {
		return false, err
	}
	return out.HasPurchased, nil
}

// ListSubscriptions returns every subscription of a user, newest first
func (c *Client) ListSubscriptions(ctx context.Context, userID string) ([]models.Subscription, error) {
	var out []models.Subscription
	if err := c.do(c.request(ctx), http.MethodGet, "/users/"+url.PathEscape(userID)+"/subscriptions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSubmissions returns the full forms inbox; filtering happens client-side
func (c *Client) ListSubmissions(ctx context.Context) ([]models.FormSubmission, error) {
	var out []models.FormSubmission
	if err := c.do(c.request(ctx), http.MethodGet, "/forms/submissions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListNotifications returns all admin notifications
func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	if err := c.do(c.request(ctx), http.MethodGet, "/notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}
