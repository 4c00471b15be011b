// Package calendar exports a season schedule as iCalendar data and reads such
// files back.
package calendar
