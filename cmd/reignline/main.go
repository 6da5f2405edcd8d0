// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command reignline computes timeline scenes and manages datasets from the shell.
//
// It shares the layout engine and dataset stores with the HTTP API, so a scene
// rendered here is identical to the one POST /api/v1/scene returns.
package main

func main() {
	Execute()
}
