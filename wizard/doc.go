// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package wizard drives a registration draft through its three steps.

A session is the current step plus the draft. It lives in a DraftCache
under regdesk-draft:<key> and survives restarts. Next validates the
current step before advancing: Step1 also checks that the trimmed team
name is not already registered, Step2 applies the gender balance rule.
Submit validates everything again, records the client's IP address and
user agent and stores the registration.

Uniqueness is a read-then-write check and is advisory on its own. Pair it
with the storage UNIQUE index when duplicates must be impossible.
*/
package wizard
