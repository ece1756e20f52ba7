/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/BenitThinot03/chat-verse-guide-ai/cmd"

func main() {
	cmd.Execute()
}
