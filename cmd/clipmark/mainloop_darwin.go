package main

import "golang.design/x/hotkey/mainthread"

// runOnMain runs fn while the main thread serves the Cocoa event loop global
// shortcuts need.
func runOnMain(fn func()) { mainthread.Init(fn) }
