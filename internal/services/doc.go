// Package services renders the dashboard pages as JSON view models.
// Each page is a pure function of the dataset snapshot and the request
// filters; absent datasets yield placeholders and warnings, never errors.
package services
