// cmd/diet-manager/main.go
package main

const version = "1.0.0"

func main() {
	Execute()
}
