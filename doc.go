/*
Package concierge is a multi-turn conversation engine for Berry Airlines
flight booking: it classifies free-text messages into intents, runs each
intent as a stateful transaction, and persists every conversation turn so
sessions survive restarts.

# Concept

Each user message belongs to a session. A session owns at most one active
transaction (a booking in progress, a status lookup); while one is active it
consumes every message, so "status" typed mid-booking is a destination city,
not a new request. When no transaction is active the message is classified
and a new transaction starts, or the bot asks the user to rephrase.

Transactions that need an account, like confirming a booking, pause behind
an authentication sub-flow and resume exactly where they stopped once the
user has logged in or registered.

# Usage

The zero-config path runs fully in process, with an embedded intent corpus
and a generated demo flight schedule:

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/berryair/concierge"
	)

	func main() {
		bot := concierge.New()

		reply, err := bot.SendMessage(context.Background(), "session-123", "I want to book a flight")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(reply)
	}

Production deployments swap in durable collaborators with options:

	bot := concierge.New(
		concierge.WithLogger(logger),
		concierge.WithStore(redisStore),
		concierge.WithLocker(redisLocker),
	)

The cmd/concierge binary wraps the same facade in a terminal chat, an HTTP
API and an MCP server.
*/
package concierge
