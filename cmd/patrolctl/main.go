package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robopatrol/patrolsdk"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "patrolctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("patrolctl", flag.ContinueOnError)
	configPath := fs.String("config", "patrolctl.toml", "path to config.toml")
	host := fs.String("host", "", "override server host")
	port := fs.Int("port", 0, "override server port")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: patrolctl [flags] <status|rtk|rtk-raw|state|cancel|speed|stop|gait|height|nav> [args]")
	}

	cfg := defaultRuntimeConfig()
	if _, err := os.Stat(*configPath); err == nil {
		loaded, err := loadRuntimeConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}

	client := patrolsdk.New(cfg.Opts)
	if err := client.Connect(cfg.Host, cfg.Port); err != nil {
		return err
	}
	defer client.Close()

	return dispatch(client, fs.Args())
}

func dispatch(client *patrolsdk.Client, args []string) error {
	switch args[0] {
	case "status":
		st := client.RealTimeState()
		if st.ErrorCode != patrolsdk.RealTimeSuccess {
			return fmt.Errorf("status failed: code %d", st.ErrorCode)
		}
		fmt.Printf("pos=(%.3f, %.3f, %.3f) yaw=%.3f speed=%.3f battery=%d%%\n",
			st.PosX, st.PosY, st.PosZ, st.AngleYaw, st.Speed, st.Electricity)
		return nil
	case "rtk":
		data := client.RTKFusion()
		if data.ErrorCode != patrolsdk.RTKSuccess {
			return fmt.Errorf("rtk fusion failed: code %d", data.ErrorCode)
		}
		fmt.Printf("lon=%.7f lat=%.7f height=%.3f yaw=%.3f\n",
			data.Longitude, data.Latitude, data.ElpHeight, data.Yaw)
		return nil
	case "rtk-raw":
		data := client.RTKRaw()
		if data.ErrorCode != patrolsdk.RTKSuccess {
			return fmt.Errorf("rtk raw failed: code %d", data.ErrorCode)
		}
		fmt.Printf("lon=%.7f lat=%.7f height=%.3f yaw=%.3f\n",
			data.Longitude, data.Latitude, data.ElpHeight, data.Yaw)
		return nil
	case "state":
		st := client.NavTaskState()
		if st.ErrorCode != patrolsdk.QuerySuccess {
			return fmt.Errorf("task state failed: code %d", st.ErrorCode)
		}
		fmt.Printf("task status=%d value=%d\n", st.Status, st.Value)
		return nil
	case "cancel":
		res := client.CancelNavTask()
		if res.ErrorCode != patrolsdk.CancelSuccess {
			return fmt.Errorf("cancel failed: code %d", res.ErrorCode)
		}
		fmt.Println("navigation task cancelled")
		return nil
	case "speed":
		if len(args) != 3 {
			return fmt.Errorf("usage: patrolctl speed <forward|backward|left|right|turn-left|turn-right> <m/s>")
		}
		cmd, err := parseSpeedCommand(args[1])
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(args[2], 32)
		if err != nil {
			return fmt.Errorf("invalid speed %q: %w", args[2], err)
		}
		return reportMotion(client.SpeedControl(cmd, float32(v)))
	case "stop":
		return reportMotion(client.ActionControl(patrolsdk.ActionStop))
	case "gait":
		if len(args) != 2 {
			return fmt.Errorf("usage: patrolctl gait <1-4>")
		}
		mode, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid gait %q: %w", args[1], err)
		}
		return reportMotion(client.SwitchGait(patrolsdk.GaitMode(mode)))
	case "height":
		if len(args) != 2 {
			return fmt.Errorf("usage: patrolctl height <0|1>")
		}
		h, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid height %q: %w", args[1], err)
		}
		return reportMotion(client.SwitchBodyHeight(h))
	case "nav":
		if len(args) != 2 {
			return fmt.Errorf("usage: patrolctl nav <waypoints.json>")
		}
		points, err := loadWaypoints(args[1])
		if err != nil {
			return err
		}
		done := make(chan patrolsdk.NavigationResult, 1)
		client.StartNavTask(points, func(res patrolsdk.NavigationResult) {
			done <- res
		})
		fmt.Printf("navigation task submitted, %d points\n", len(points))
		res := <-done
		if res.ErrorCode != patrolsdk.NavSuccess {
			return fmt.Errorf("navigation failed: code %d status %d", res.ErrorCode, res.ErrorStatus)
		}
		fmt.Println("navigation task completed")
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func parseSpeedCommand(raw string) (patrolsdk.SpeedCommand, error) {
	switch raw {
	case "forward":
		return patrolsdk.SpeedForward, nil
	case "backward":
		return patrolsdk.SpeedBackward, nil
	case "left":
		return patrolsdk.SpeedTransverseLeft, nil
	case "right":
		return patrolsdk.SpeedTransverseRight, nil
	case "turn-left":
		return patrolsdk.SpeedTurnLeft, nil
	case "turn-right":
		return patrolsdk.SpeedTurnRight, nil
	default:
		return 0, fmt.Errorf("unknown speed command %q", raw)
	}
}

func reportMotion(res patrolsdk.MotionControlResult) error {
	switch res.ErrorCode {
	case patrolsdk.MotionSuccess:
		fmt.Println("ok")
		return nil
	case patrolsdk.MotionTooFrequent:
		return fmt.Errorf("command rejected: faster than one per %v", 200*time.Millisecond)
	default:
		return fmt.Errorf("motion command failed: code %d", res.ErrorCode)
	}
}
