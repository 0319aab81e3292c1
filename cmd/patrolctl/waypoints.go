package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/robopatrol/patrolsdk"
)

// loadWaypoints reads an ordered JSON array of navigation points, the
// same shape the robot's planning tools export.
func loadWaypoints(path string) ([]patrolsdk.NavigationPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load waypoints %q: %w", path, err)
	}
	var points []patrolsdk.NavigationPoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("parse waypoints %q: %w", path, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("waypoints %q: empty point list", path)
	}
	return points, nil
}
