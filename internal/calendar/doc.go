// Package calendar renders event feeds as iCalendar payloads.
package calendar
