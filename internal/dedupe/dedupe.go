package dedupe

// Package dedupe provides the shared singleflight group used to deduplicate
// concurrent run-to-completion requests. Driving a battle to its terminal
// status can take many ticks; a centralized singleflight.Group ensures only
// one driver loop runs per battle while other callers wait for its result.

import "golang.org/x/sync/singleflight"

// BattleRunGroup deduplicates run-to-completion requests keyed by battle
// UUID.
var BattleRunGroup singleflight.Group
