package main

import "github.com/mallkiller3-ctrl/daily-health/cmd/dailyhealth"

func main() {
	dailyhealth.Execute()
}
