package emitter

import (
	"sort"
	"strings"
)

// mathHelpersBlock backs `_avg`/`_sum`/`_toDegrees`/`_toRadians`/
// `_roundToMintick` references (spec.md §4.4, §9). These are general-purpose
// helpers, not technical-analysis numerics, so implementing them directly
// stays inside scope.
const mathHelpersBlock = `function _avg(...values) {
  let total = 0;
  for (const v of values) total += v;
  return total / values.length;
}
function _sum(...values) {
  let total = 0;
  for (const v of values) total += v;
  return total;
}
function _toDegrees(radians) { return (radians * 180) / Math.PI; }
function _toRadians(degrees) { return (degrees * Math.PI) / 180; }
function _roundToMintick(value, context) {
  const tick = _syminfoMintick(context);
  return Math.round(value / tick) * tick;
}
`

// sessionHelpersBlock forwards session/time predicates to the host's
// session surface rather than reimplementing market-hours logic, per
// spec.md's non-goal on TA/session numerical semantics.
const sessionHelpersBlock = `function _isInSession(context, inputIndex, timezone) {
  return context.session.isInSession(context.input(inputIndex), timezone);
}
function _isMarketSession(context) { return context.session.isMarket(); }
function _isPremarket(context) { return context.session.isPremarket(); }
function _isPostmarket(context) { return context.session.isPostmarket(); }
function _getTimeClose(context) { return context.session.timeClose(); }
function _getTradingDayTime(context) { return context.session.tradingDayTime(); }
`

// taPolyfillBlock gives emitted `_ta.*` calls a namespace binding without
// reimplementing the indicators themselves — the numerical semantics are
// delegated to the host standard library (spec.md §1 Non-goals).
const taPolyfillBlock = `const _ta = context.ta;
`

// buildPreamble composes, in order: per-source series wrappers and
// historical getters, fallback getters for other historically-accessed
// names, then only the helper blocks whose call prefixes actually appear in
// body (spec.md §4.4, §8 "preamble ⇔ body contains call-prefix").
func (e *Emitter) buildPreamble(body string) string {
	var b strings.Builder

	for _, src := range sortedSet(e.historicalSources) {
		b.WriteString("const _series_" + src + " = context.new_var(" + src + "(context));\n")
		b.WriteString("function _getHistorical_" + src + "(n) { return _series_" + src + ".get(n); }\n")
	}
	for _, name := range sortedSet(e.historicalOther) {
		b.WriteString("function _getHistorical_" + sanitizeIdent(name) + "(n) { return NOT_AVAILABLE; }\n")
	}

	if containsAny(body, "_avg(", "_sum(", "_toDegrees(", "_toRadians(", "_roundToMintick(") {
		b.WriteString(mathHelpersBlock)
	}
	if containsAny(body, "_isInSession(", "_isMarketSession(", "_isPremarket(", "_isPostmarket(", "_getTimeClose(", "_getTradingDayTime(") {
		b.WriteString(sessionHelpersBlock)
	}
	if containsAny(body, "_ta.", "StdPlus.") {
		b.WriteString(taPolyfillBlock)
	}

	return b.String()
}

func containsAny(body string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.Contains(body, p) {
			return true
		}
	}
	return false
}

func sortedSet(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
