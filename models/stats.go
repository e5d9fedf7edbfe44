package models

import "time"

// PlatformStats are the aggregate counters shown on the landing page.
type PlatformStats struct {
	Users         int64     `json:"users"`
	Reviews       int64     `json:"reviews"`
	ServicesCount int64     `json:"servicesCount"`
	ComputedAt    time.Time `json:"-"`
}

// InsertResult mirrors the acknowledgement returned after a create.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}
