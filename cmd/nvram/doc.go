// Package main provides the entry point for nvram.
//
// nvram reads and writes the persistent key/value sections of a device:
//
//	nvram list
//	nvram get hostname
//	nvram set hostname board-7 ip 10.0.0.2
//	nvram --sys set serial DR-0042
//	nvram -i mtd delete ip
//
// Section locations come from a YAML file (--config, NVRAM_CONFIG) and
// NVRAM_<INTERFACE>_<ROLE>_<SLOT> variables such as NVRAM_FILE_USER_A.
package main
