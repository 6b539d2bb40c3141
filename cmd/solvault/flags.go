// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for vault databases",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-4: error, warn, info, debug, trace)",
	}
	signerFlag = cli.StringFlag{
		Name:  "signer",
		Usage: "base58 public key acting as the instruction signer",
	}
	userFlag = cli.StringFlag{
		Name:  "user",
		Usage: "base58 public key of the staking user",
	}
	rewardMintFlag = cli.StringFlag{
		Name:  "reward-mint",
		Usage: "base58 public key of the reward token mint",
	}
	collectionFlag = cli.StringFlag{
		Name:  "collection",
		Usage: "base58 public key of the authorized NFT collection mint",
	}
	rateFlag = cli.Uint64Flag{
		Name:  "rate",
		Value: 10,
		Usage: "reward rate in base units per staked NFT per second",
	}
	nftMintFlag = cli.StringFlag{
		Name:  "nft-mint",
		Usage: "base58 public key of the NFT mint",
	}
	nftAccountFlag = cli.StringFlag{
		Name:  "nft-account",
		Usage: "base58 public key of the user's NFT token account",
	}
	eventNameFlag = cli.StringFlag{
		Name:  "name",
		Usage: "filter events by name, e.g. nft_staked",
	}
	limitFlag = cli.IntFlag{
		Name:  "limit",
		Value: 50,
		Usage: "maximum number of events to return",
	}
)
