package combat

// ApplyStatus is the sole mutation entry for adding or refreshing a status.
// An existing instance of the same type is replaced wholesale: duration and
// value are both overwritten, so re-applying a shield resets its pool even
// if partially depleted, and statuses never stack.
func ApplyStatus(c *Combatant, s StatusEffect) {
	for i := range c.Statuses {
		if c.Statuses[i].Type == s.Type {
			c.Statuses[i] = s
			return
		}
	}
	c.Statuses = append(c.Statuses, s)
}

// RemoveStatus drops the instance of the given type, if present.
func RemoveStatus(c *Combatant, t StatusType) {
	for i := range c.Statuses {
		if c.Statuses[i].Type == t {
			c.Statuses = append(c.Statuses[:i], c.Statuses[i+1:]...)
			return
		}
	}
}

// processStatusEffects applies one tick of time-based status behaviour to a
// single combatant: poison damage, then duration decay and expiry. It is
// tick-agnostic; the executor stamps the returned events. Permanent
// statuses (duration -1) are never decremented and never expire.
//
// The expiry event fires on the tick the duration reaches 0; the record is
// swept at the start of the next processing pass. The expired record is
// inactive for every presence check, but poison still deals its damage on
// that final pass: a duration-3 poison damages four times, with the expiry
// event on the third.
//
// Cancelling in-flight actions of combatants knocked out here is not this
// function's job; the executor's cleanup phase handles it.
func processStatusEffects(c Combatant) (Combatant, []Event) {
	if len(c.Statuses) == 0 {
		return c, nil
	}

	var events []Event
	kept := c.Statuses[:0:0]
	for _, st := range c.Statuses {
		if st.Type == StatusPoisoned {
			prev := c.CurrentHP
			c.CurrentHP -= st.Value
			if c.CurrentHP < 0 {
				c.CurrentHP = 0
			}
			events = append(events, Event{
				Type:    EventDamage,
				Target:  c.ID,
				Value:   st.Value,
				Status:  StatusPoisoned,
				Message: c.Name + " suffers " + itoa(st.Value) + " poison damage",
			})
			if prev > 0 && c.CurrentHP == 0 {
				events = append(events, Event{
					Type:    EventKnockout,
					Target:  c.ID,
					Message: c.Name + " is knocked out",
				})
			}
		}

		switch {
		case st.Duration == PermanentDuration:
			kept = append(kept, st)
		case st.Duration == 0:
			// Expired last pass; swept silently now.
		default:
			st.Duration--
			if st.Duration == 0 {
				events = append(events, Event{
					Type:    EventStatusExpired,
					Target:  c.ID,
					Status:  st.Type,
					Message: c.Name + " is no longer " + string(st.Type),
				})
			}
			kept = append(kept, st)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	c.Statuses = kept
	return c, events
}
