// Package gui is the fyne front end for the tuner.
package gui
