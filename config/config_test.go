package config

import (
	"testing"

	"github.com/dfawole/m4tplay/filesystem"
	"github.com/dfawole/m4tplay/key"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config setup", t, func() {
		So(Setup(), ShouldBeNil)

		Convey("All defined keys are registered", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("Env names carry the application prefix", func() {
			field := Default[key.LogsWrite]
			So(field.Env(), ShouldEqual, "M4TPLAY_LOGS_WRITE")
		})
	})
}
