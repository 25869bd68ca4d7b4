// ABOUTME: Server instructions describing Beeminder to the hosting agent.
// ABOUTME: Condensed primer on goal types, the red line, and pledges.
package mcp

const serverInstructions = `You are working with Beeminder, a commitment
tool that combines quantified self-tracking with financial stakes. Every
goal tracks a measurable quantity against a Bright Red Line showing the
committed path; a datapoint on the wrong side of the line derails the goal
and charges the current pledge.

Goal types and their semantics:
  hustler   Do More      - accumulate value over time (study hours, workouts)
  biker     Odometer     - cumulative readings, like pages read across books
  fatloser  Weight Loss  - whittle a quantity down
  gainer    Gain Weight  - push a quantity up
  inboxer   Inbox Fewer  - whittle a count down
  drinker   Do Less      - stay under a limit

Key concepts:
- Exactly two of goaldate, goalval, and rate define a goal; Beeminder
  derives the third.
- The akrasia horizon: changes that make a goal easier take effect only
  after 7 days.
- safebuf is the number of safe days; zero means a beemergency (data must
  be entered today or the goal derails).
- Pledges escalate on each derailment: $0, $5, $10, $30, $90, $270, ...
- Datapoints are day-granularity; daystamps use YYYYMMDD in the user's
  timezone.

When advising the user, check that goals are quantifiable, rates are
sustainable, and safety buffer is adequate. Goal and datapoint listings
are usually best presented as tables.`
