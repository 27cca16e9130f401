package handlers

import (
	telebot "gopkg.in/telebot.v3"
)

// Handler processes bot updates.
type Handler func(c telebot.Context) error

// CallbackHandler processes inline callback events.
type CallbackHandler func(c telebot.Context) error

// Middleware wraps handlers with additional behavior.
type Middleware func(Handler) Handler

// AdminGate tracks which chat sessions hold admin access. Access is granted
// for the process lifetime once the password check passes.
type AdminGate interface {
	Grant(userID int64)
	IsAdmin(userID int64) bool
}

// Reactor sets an emoji reaction on a message, best effort.
type Reactor interface {
	React(chatID int64, messageID int, emoji string) error
}
