// Package notification models the admin live feed entries.
//
// Every order transition records a Notification. Creating one triggers a live
// broadcast; notifications whose broadcast did not happen are picked up again
// by the relay job.
package notification
