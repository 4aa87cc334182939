// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package config

import (
	"fmt"
	"net/url"
)

// validateHTTPURL checks a base URL: http or https, a host, and no path or
// query beyond a trailing slash.
func validateHTTPURL(rawURL, fieldName string) error {
	u, err := validateEndpointURL(rawURL, fieldName)
	if err != nil {
		return err
	}
	if u.Path != "" && u.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, u.Path)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, u.RawQuery)
	}
	return nil
}

// validateEndpointURL checks a full endpoint URL. Paths and queries are
// allowed because upstream services are addressed by endpoint.
func validateEndpointURL(rawURL, fieldName string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%s host is required", fieldName)
	}
	return u, nil
}
