package apds9960

// Register map (datasheet: Broadcom APDS-9960, AV02-4191EN)
const (
	regEnable    byte = 0x80
	regATime     byte = 0x81
	regWTime     byte = 0x83
	regAILTL     byte = 0x84
	regAIHTL     byte = 0x86
	regPILT      byte = 0x89
	regPIHT      byte = 0x8B
	regPers      byte = 0x8C
	regConfig1   byte = 0x8D
	regPPulse    byte = 0x8E
	regControl   byte = 0x8F
	regConfig2   byte = 0x90
	regID        byte = 0x92
	regStatus    byte = 0x93
	regCDataL    byte = 0x94
	regRDataL    byte = 0x96
	regGDataL    byte = 0x98
	regBDataL    byte = 0x9A
	regPData     byte = 0x9C
	regPOffsetUR byte = 0x9D
	regPOffsetDL byte = 0x9E
	regConfig3   byte = 0x9F
	regGPEnTh    byte = 0xA0
	regGExTh     byte = 0xA1
	regGConf1    byte = 0xA2
	regGConf2    byte = 0xA3
	regGOffsetU  byte = 0xA4
	regGOffsetD  byte = 0xA5
	regGPulse    byte = 0xA6
	regGOffsetL  byte = 0xA7
	regGOffsetR  byte = 0xA9
	regGConf3    byte = 0xAA
	regGConf4    byte = 0xAB
	regGFLvl     byte = 0xAE
	regGStatus   byte = 0xAF
	regIForce    byte = 0xE4
	regPIClear   byte = 0xE5
	regCIClear   byte = 0xE6
	regAIClear   byte = 0xE7
	regGFIFOU    byte = 0xFC
)

// ENABLE register bits
const (
	enableAll  byte = 0b1111_1111
	enablePON  byte = 0b0000_0001
	enableAEN  byte = 0b0000_0010
	enablePEN  byte = 0b0000_0100
	enableWEN  byte = 0b0000_1000
	enableAIEN byte = 0b0001_0000
	enablePIEN byte = 0b0010_0000
	enableGEN  byte = 0b0100_0000
)

// CONFIG1 register bits
const configWLong byte = 0b0000_0010

// CONFIG2 register bits
const (
	config2PSIEN  byte = 0b1000_0000
	config2CPSIEN byte = 0b0100_0000
)

// CONFIG3 register bits
const (
	config3PCMP   byte = 0b0010_0000
	config3PMaskR byte = 0b0000_0001
	config3PMaskL byte = 0b0000_0010
	config3PMaskD byte = 0b0000_0100
	config3PMaskU byte = 0b0000_1000
)

// CONTROL register fields
const (
	controlLEDDriveShift byte = 6
	controlLEDDriveMask  byte = 0b1100_0000
	controlPGainShift    byte = 2
	controlPGainMask     byte = 0b0000_1100
	controlAGainMask     byte = 0b0000_0011
)

// PERS register fields
const (
	persAPersMask  byte = 0b0000_1111
	persPPersShift byte = 4
	persPPersMask  byte = 0b1111_0000
)

// STATUS register bits
const (
	statusAValid byte = 0b0000_0001
	statusPValid byte = 0b0000_0010
)

// GCONF1 register bits (FIFO interrupt threshold)
const (
	gconf1FIFOTh1 byte = 0b1000_0000
	gconf1FIFOTh0 byte = 0b0100_0000
)

// GCONF4 register bits
const (
	gconf4GMode   byte = 0b0000_0001
	gconf4GIEN    byte = 0b0000_0010
	gconf4FIFOClr byte = 0b0000_0100
)

// GSTATUS register bits
const (
	gstatusGValid byte = 0b0000_0001
	gstatusGFOv   byte = 0b0000_0010
)

// applyFlag computes a new register value from the cached one: OR to set the
// masked bits, AND-NOT to clear them. The result is committed to the shadow
// copy only after a successful hardware write (see Device.setFlag).
func applyFlag(value, mask byte, on bool) byte {
	if on {
		return value | mask
	}
	return value &^ mask
}
