// Package config loads the cliprename TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/cliprename/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. Environment overrides (CLIPRENAME_CLIPS_DIR, CLIPRENAME_DAY_FIELD,
//     CLIPRENAME_DRY_RUN) are applied on top of the file values
//
// Missing config files are NOT an error. The tool runs out of the box next to
// the clips it renames, which is where it looks when clips_dir is unset.
//
// # TOML Format
//
//	clips_dir = "~/Videos/Clips"
//	extension = ".mp4"
//	credentials_dir = "~/.config/cliprename"
//	client_id_file = "client_id.txt"
//	client_secret_file = "client_secret.txt"
//	rename_log = "renames.log"
//	debug_log = "debug.log"
//	token_url = "https://id.twitch.tv/oauth2/token"
//	clips_url = "https://api.twitch.tv/helix/clips"
//	day_field = "month"      # or "weekday" for the legacy names
//	timezone = "Europe/Berlin"
//	theme = "Nightfox"
//	request_timeout = "30s"
//	pause_on_exit = true
//	strict_save = false
//	dry_run = false
//
// All fields are optional. Relative rename_log and debug_log paths are
// resolved against clips_dir; credentials_dir defaults to clips_dir.
package config
